package bootstrap

import (
	"quiz-service/config"
	httpHandler "quiz-service/internal/api/http/handler"
	wsHandler "quiz-service/internal/api/ws/handler"
	"quiz-service/internal/handler"
	"quiz-service/internal/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		AllowOrigins: config.Server.AllowOrigins,
		IdleTimeout:  config.Server.IdleTimeout,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	app := server.NewFiberApp(serverConfig)

	getLeaderboardHandler := httpHandlers["get-leaderboard"].(*httpHandler.GetLeaderboardHandler)
	exportResultsHandler := httpHandlers["export-results"].(*httpHandler.ExportResultsHandler)
	getCategoriesHandler := httpHandlers["get-categories"].(*httpHandler.GetCategoriesHandler)

	app.Get("/categories", handler.HandleWithFiber[httpHandler.GetCategoriesRequest, httpHandler.GetCategoriesResponse](getCategoriesHandler))
	app.Get("/rooms/:room_code/leaderboard", handler.HandleWithFiber[httpHandler.GetLeaderboardRequest, httpHandler.GetLeaderboardResponse](getLeaderboardHandler))
	app.Get("/rooms/:room_code/export", handler.HandleWithFiber[httpHandler.ExportResultsRequest, httpHandler.ExportResultsResponse](exportResultsHandler))

	wsRoute := app.Group("/ws")
	connectHandler := wsHandlers["quiz-connect"].(*wsHandler.WebSocketConnectHandler)
	wsRoute.Get("/", handler.HandleWithFiberWS[wsHandler.WebSocketConnectRequest](connectHandler))

	return app
}
