package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisManager publishes room lifecycle events over Redis Pub/Sub.
type RedisManager struct {
	client *redis.Client
}

// RoomEvent is the payload published on a room channel.
type RoomEvent struct {
	RoomCode string `json:"room_code"`
	Type     string `json:"type"`
	Data     struct {
		Type    string      `json:"type"`
		Content interface{} `json:"content"`
	} `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRedisManager(redisAddr string, password string, db int) (*RedisManager, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
	}

	return &RedisManager{client: rdb}, nil
}

func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

// Channel is the pub/sub channel of a room.
func Channel(roomCode string) string {
	return fmt.Sprintf("room:%s", roomCode)
}

func encodeEvent(roomCode, msgType string, dataContent interface{}, at time.Time) ([]byte, error) {
	msg := RoomEvent{
		RoomCode:  roomCode,
		Type:      "room_manager",
		Timestamp: at.UTC(),
	}
	msg.Data.Type = msgType
	msg.Data.Content = dataContent
	return json.Marshal(msg)
}

func (rm *RedisManager) PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{}) {
	payload, err := encodeEvent(roomCode, msgType, dataContent, time.Now())
	if err != nil {
		zap.L().Error("Failed to marshal Redis message", zap.String("type", msgType), zap.Error(err))
		return
	}

	channel := Channel(roomCode)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		zap.L().Error("Failed to publish message to Redis channel",
			zap.String("channel", channel),
			zap.String("type", msgType),
			zap.Error(err))
	}
}
