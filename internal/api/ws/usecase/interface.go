package wsUsecase

import (
	"context"

	"quiz-service/domain"
	"quiz-service/internal/api/game"
)

// RoomManager is the part of the room registry the quiz use case drives.
type RoomManager interface {
	CreateRoom(ctx context.Context, teacherID, category string) (*game.Room, error)
	GetRoom(code string) *game.Room
	JoinRoom(code, clientID, name string) error
	FindRoomByClientID(clientID string) *game.Room
}

type Sender interface {
	SendToClient(clientID string, msg *domain.Message)
}
