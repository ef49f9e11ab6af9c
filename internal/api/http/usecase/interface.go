package httpUsecase

import (
	"context"

	"quiz-service/internal/api/game"
)

type RoomRegistry interface {
	GetRoom(code string) *game.Room
}

type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]string, error)
}
