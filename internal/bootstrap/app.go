package bootstrap

import (
	"context"
	"time"

	"quiz-service/config"
	"quiz-service/internal/api/game"
	"quiz-service/internal/server"
	"quiz-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	config       config.Config
	ctx          context.Context
	cancel       context.CancelFunc
	postgresRepo PostgresRepository
	events       EventPublisher
	wsHub        Hub
	roomManager  *game.RoomManager
	fiberApp     *fiber.App
	httpHandlers map[string]interface{}
	wsHandlers   map[string]interface{}
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	a.events = InitEvents(a.config)
	a.wsHub = InitWebsocket()
	a.roomManager = InitRoomManager(a.config, a.postgresRepo, a.wsHub, a.events)
	a.httpHandlers = SetupHTTPHandlers(a.postgresRepo, a.roomManager)
	a.wsHandlers = SetupWSHandlers(a.config, a.roomManager, a.wsHub)
	a.fiberApp = SetupServer(a.config, a.httpHandlers, a.wsHandlers)
}

func (a *App) Start() {
	go a.wsHub.Run(a.ctx)
	go a.roomManager.StartCleanupJob(a.ctx, a.config.Game.ReapInterval, a.config.Game.RoomTTL)

	go func() {
		if err := server.Start(a.fiberApp, a.config.Server.Host, a.config.Server.Port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			a.cancel()
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, a.ctx,
		a.cancel,
		a.roomManager.Shutdown,
		func() {
			if err := a.events.Close(); err != nil {
				zap.L().Error("Failed to close event publisher", zap.Error(err))
			}
		},
		func() {
			if err := a.postgresRepo.Close(); err != nil {
				zap.L().Error("Failed to close database", zap.Error(err))
			}
		},
	)
}
