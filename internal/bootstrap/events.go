package bootstrap

import (
	"context"

	"quiz-service/config"
	"quiz-service/internal/api/game"
	"quiz-service/internal/initializer"

	"go.uber.org/zap"
)

const (
	EventsDriverRedis = "redis"
	EventsDriverKafka = "kafka"
	EventsDriverNone  = "none"
)

type EventPublisher interface {
	PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{})
	Close() error
}

type noopEvents struct {
	game.EventPublisher
}

func (noopEvents) Close() error { return nil }

// InitEvents picks the lifecycle event sink named by events.driver.
func InitEvents(config config.Config) EventPublisher {
	switch config.Events.Driver {
	case EventsDriverRedis:
		return initializer.InitRoomRedis(config)
	case EventsDriverKafka:
		return initializer.InitKafkaPublisher(config)
	case EventsDriverNone, "":
		zap.L().Info("Room events are not published")
	default:
		zap.L().Warn("Unknown events driver, room events are not published", zap.String("driver", config.Events.Driver))
	}
	return noopEvents{game.NoopPublisher()}
}
