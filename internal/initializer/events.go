package initializer

import (
	"quiz-service/config"
	"quiz-service/infra/kafka"
	"quiz-service/infra/redis"

	"go.uber.org/zap"
)

func InitRoomRedis(appConfig config.Config) *redis.RedisManager {
	redisManager, err := redis.NewRedisManager(appConfig.Redis.Addr(), appConfig.Redis.Password, appConfig.Redis.DB)
	if err != nil {
		zap.L().Fatal("Failed to initialize redis", zap.Error(err))
	}
	zap.L().Info("Redis event publisher initialized", zap.String("addr", appConfig.Redis.Addr()))
	return redisManager
}

func InitKafkaPublisher(appConfig config.Config) *kafka.Publisher {
	publisher, err := kafka.NewPublisher(kafka.Config{
		Brokers: appConfig.Kafka.Brokers,
		Topic:   appConfig.Kafka.Topic,
	})
	if err != nil {
		zap.L().Fatal("Failed to initialize kafka publisher", zap.Error(err))
	}
	return publisher
}
