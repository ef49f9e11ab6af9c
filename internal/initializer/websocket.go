package initializer

import (
	gameHub "quiz-service/internal/api/ws/hub"
)

func InitWebsocket() *gameHub.Hub {
	return gameHub.NewHub()
}
