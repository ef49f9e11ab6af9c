package game

import (
	"context"

	"quiz-service/domain"
)

// Notifier delivers frames to connections. Implementations must not block and
// must not call back into a Room.
type Notifier interface {
	SendToClient(clientID string, msg *domain.Message)
	BroadcastToRoom(roomCode string, msg *domain.Message)
	JoinRoom(roomCode, clientID string)
	CloseRoom(roomCode string)
}

// EventPublisher receives room lifecycle events for consumers outside this
// process (dashboards, archiving).
type EventPublisher interface {
	PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{})
}

// QuestionStore loads the question bank of a category.
type QuestionStore interface {
	GetQuestionsByCategory(ctx context.Context, category string) ([]domain.Question, error)
}

type noopPublisher struct{}

func (noopPublisher) PublishMessage(context.Context, string, string, interface{}) {}

// NoopPublisher drops every event.
func NoopPublisher() EventPublisher { return noopPublisher{} }
