package bootstrap

import (
	"context"

	"quiz-service/config"
	"quiz-service/domain"
	"quiz-service/internal/initializer"
)

type PostgresRepository interface {
	Close() error
	GetQuestionsByCategory(ctx context.Context, category string) ([]domain.Question, error)
	GetCategories(ctx context.Context) ([]string, error)
}

func InitDatabase(config config.Config) PostgresRepository {
	return initializer.InitDatabase(config)
}
