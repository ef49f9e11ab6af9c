package bootstrap

import (
	"quiz-service/config"
	"quiz-service/internal/api/game"
)

func GameSettings(config config.Config) game.Settings {
	return game.Settings{
		SettleDelay:     config.Game.SettleDelay,
		AnswerPoints:    config.Game.AnswerPoints,
		CodeLength:      config.Game.CodeLength,
		QuestionTimeout: config.Game.QuestionTimeout,
	}
}

func InitRoomManager(config config.Config, store game.QuestionStore, notifier game.Notifier, events game.EventPublisher) *game.RoomManager {
	return game.NewRoomManager(store, notifier, GameSettings(config), game.WithEventPublisher(events))
}
