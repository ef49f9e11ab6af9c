package wsUsecase

import (
	"context"
	"strings"

	"quiz-service/domain"
	"quiz-service/internal/api/game"

	"go.uber.org/zap"
)

// QuizUseCase carries out the inbound quiz events of one connection.
type QuizUseCase interface {
	CreateRoom(ctx context.Context, clientID, category string) error
	JoinRoom(ctx context.Context, clientID, roomCode, name string) error
	StartGame(ctx context.Context, clientID, roomCode, ownerToken string) error
	SubmitAnswer(ctx context.Context, clientID, roomCode, answer string) error
	Disconnect(ctx context.Context, clientID string)
}

type quizUseCase struct {
	rooms  RoomManager
	sender Sender
}

func NewQuizUseCase(rooms RoomManager, sender Sender) QuizUseCase {
	return &quizUseCase{
		rooms:  rooms,
		sender: sender,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (u *quizUseCase) CreateRoom(ctx context.Context, clientID, category string) error {
	room, err := u.rooms.CreateRoom(ctx, clientID, strings.TrimSpace(category))
	if err != nil {
		return err
	}

	created := game.RoomCreatedContent{
		RoomCode:   room.Code,
		OwnerToken: room.OwnerToken(),
		Category:   room.Category,
		Total:      room.QuestionCount(),
	}
	u.sender.SendToClient(clientID, &domain.Message{Type: domain.EventRoomCreated, Content: created})
	return nil
}

func (u *quizUseCase) room(code string) (*game.Room, error) {
	room := u.rooms.GetRoom(normalizeCode(code))
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

func (u *quizUseCase) JoinRoom(ctx context.Context, clientID, roomCode, name string) error {
	return u.rooms.JoinRoom(normalizeCode(roomCode), clientID, strings.TrimSpace(name))
}

func (u *quizUseCase) StartGame(ctx context.Context, clientID, roomCode, ownerToken string) error {
	room, err := u.room(roomCode)
	if err != nil {
		return err
	}
	return room.Start(ownerToken)
}

func (u *quizUseCase) SubmitAnswer(ctx context.Context, clientID, roomCode, answer string) error {
	room, err := u.room(roomCode)
	if err != nil {
		return err
	}
	return room.SubmitAnswer(clientID, answer)
}

func (u *quizUseCase) Disconnect(ctx context.Context, clientID string) {
	room := u.rooms.FindRoomByClientID(clientID)
	if room == nil {
		return
	}
	room.Leave(clientID)
	zap.L().Debug("client disconnected", zap.String("client", clientID), zap.String("room", room.Code))
}
