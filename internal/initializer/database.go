package initializer

import (
	"quiz-service/config"
	"quiz-service/infra/postgres"

	"go.uber.org/zap"
)

func InitDatabase(appConfig config.Config) *postgres.Repository {
	repo, err := postgres.NewRepository(appConfig.Postgres.DSN())
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	return repo
}
