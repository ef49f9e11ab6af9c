package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher writes room lifecycle events to a Kafka topic, keyed by room code
// so one room's events stay in one partition.
type Publisher struct {
	writer *kafka.Writer
}

type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Event is the JSON value of every record.
type Event struct {
	RoomCode  string      `json:"room_code"`
	Type      string      `json:"type"`
	Content   interface{} `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka publisher: no topic configured")
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	zap.L().Info("Kafka publisher initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))
	return &Publisher{writer: writer}, nil
}

func newRecord(roomCode, msgType string, content interface{}, at time.Time) (kafka.Message, error) {
	value, err := json.Marshal(Event{
		RoomCode:  roomCode,
		Type:      msgType,
		Content:   content,
		Timestamp: at.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(roomCode),
		Value: value,
		Time:  at,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msgType)},
		},
	}, nil
}

func (p *Publisher) PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{}) {
	record, err := newRecord(roomCode, msgType, dataContent, time.Now())
	if err != nil {
		zap.L().Error("Failed to build Kafka record", zap.String("type", msgType), zap.Error(err))
		return
	}
	if err := p.writer.WriteMessages(ctx, record); err != nil {
		zap.L().Error("Failed to publish Kafka record",
			zap.String("topic", p.writer.Topic),
			zap.String("room", roomCode),
			zap.String("type", msgType),
			zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
