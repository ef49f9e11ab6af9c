package bootstrap

import (
	"context"

	"quiz-service/domain"
	"quiz-service/internal/api/ws/hub"
	"quiz-service/internal/initializer"
)

type Hub interface {
	Run(ctx context.Context)
	RegisterClient(client *domain.Client)
	SendToClient(clientID string, msg *domain.Message)
	BroadcastToRoom(roomCode string, msg *domain.Message)
	JoinRoom(roomCode, clientID string)
	CloseRoom(roomCode string)
	SendError(clientID, reason string)
	SetEventHandler(handler hub.EventHandler)
}

// InitWebsocket builds the hub. Its event handler is attached in
// SetupWSHandlers since the router depends on the room manager, which sends
// through the hub.
func InitWebsocket() Hub {
	return initializer.InitWebsocket()
}
