package bootstrap

import (
	"quiz-service/config"
	"quiz-service/internal/api/game"
	httpHandler "quiz-service/internal/api/http/handler"
	httpUsecase "quiz-service/internal/api/http/usecase"
	wsHandler "quiz-service/internal/api/ws/handler"
	wsUsecase "quiz-service/internal/api/ws/usecase"
)

func SetupHTTPHandlers(postgresRepository PostgresRepository, roomManager *game.RoomManager) map[string]interface{} {
	getLeaderboardUseCase := httpUsecase.NewGetLeaderboardUseCase(roomManager)
	getLeaderboardHandler := httpHandler.NewGetLeaderboardHandler(getLeaderboardUseCase)

	exportResultsUseCase := httpUsecase.NewExportResultsUseCase(roomManager)
	exportResultsHandler := httpHandler.NewExportResultsHandler(exportResultsUseCase)

	getCategoriesUseCase := httpUsecase.NewGetCategoriesUseCase(postgresRepository)
	getCategoriesHandler := httpHandler.NewGetCategoriesHandler(getCategoriesUseCase)

	return map[string]interface{}{
		"get-leaderboard": getLeaderboardHandler,
		"export-results":  exportResultsHandler,
		"get-categories":  getCategoriesHandler,
	}
}

func SetupWSHandlers(config config.Config, roomManager *game.RoomManager, wsHub Hub) map[string]interface{} {
	quizUseCase := wsUsecase.NewQuizUseCase(roomManager, wsHub)
	eventRouter := wsHandler.NewEventRouter(quizUseCase, wsHub)
	wsHub.SetEventHandler(eventRouter)

	connectHandler := wsHandler.NewWebSocketConnectHandler(wsHub, wsHandler.ConnectConfig{
		MessagesPerSecond: config.WebSocket.MessagesPerSecond,
		Burst:             config.WebSocket.Burst,
		SendBuffer:        config.WebSocket.SendBuffer,
	})
	return map[string]interface{}{
		"quiz-connect": connectHandler,
	}
}
