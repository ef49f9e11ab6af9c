package wsHandler

import (
	"context"
	"encoding/json"
	"errors"

	"quiz-service/domain"
	wsUsecase "quiz-service/internal/api/ws/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgInvalidRoom   = "invalid code or already started"
	msgNoQuestions   = "no questions for category"
	msgInvalidFormat = "invalid payload"
	msgUnknownEvent  = "unknown event"
	msgInternal      = "internal error"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("option_tag", func(fl validator.FieldLevel) bool {
		return domain.ValidTag(fl.Field().String())
	})
	return v
}

type CreateRoomPayload struct {
	Category string `json:"category" validate:"required,max=100"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode" validate:"required,alphanum,max=16"`
	Name     string `json:"name" validate:"required,max=50"`
}

type StartGamePayload struct {
	RoomCode   string `json:"roomCode" validate:"required,alphanum,max=16"`
	OwnerToken string `json:"ownerToken" validate:"required"`
}

type SubmitAnswerPayload struct {
	RoomCode string `json:"roomCode" validate:"required,alphanum,max=16"`
	Answer   string `json:"answer" validate:"required,option_tag"`
}

type ErrorSender interface {
	SendError(clientID, reason string)
}

// EventRouter decodes inbound frames and dispatches them to the quiz use case.
// Every rejected action is answered with an error frame.
type EventRouter struct {
	usecase wsUsecase.QuizUseCase
	errors  ErrorSender
}

func NewEventRouter(usecase wsUsecase.QuizUseCase, errs ErrorSender) *EventRouter {
	return &EventRouter{
		usecase: usecase,
		errors:  errs,
	}
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var payload T
	if len(raw) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validate.Struct(payload); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &payload, nil
}

func (r *EventRouter) HandleEvent(ctx context.Context, client *domain.Client, env domain.Envelope) {
	var err error

	switch env.Type {
	case domain.EventCreateRoom:
		var p *CreateRoomPayload
		if p, err = decode[CreateRoomPayload](env.Content); err == nil {
			err = r.usecase.CreateRoom(ctx, client.ID, p.Category)
		}

	case domain.EventJoinRoom:
		var p *JoinRoomPayload
		if p, err = decode[JoinRoomPayload](env.Content); err == nil {
			if err = r.usecase.JoinRoom(ctx, client.ID, p.RoomCode, p.Name); errors.Is(err, domain.ErrRoomNotFound) ||
				errors.Is(err, domain.ErrRoomNotJoinable) {
				r.errors.SendError(client.ID, msgInvalidRoom)
				return
			}
		}

	case domain.EventStartGame:
		var p *StartGamePayload
		if p, err = decode[StartGamePayload](env.Content); err == nil {
			err = r.usecase.StartGame(ctx, client.ID, p.RoomCode, p.OwnerToken)
		}

	case domain.EventSubmitAnswer:
		var p *SubmitAnswerPayload
		if p, err = decode[SubmitAnswerPayload](env.Content); err == nil {
			err = r.usecase.SubmitAnswer(ctx, client.ID, p.RoomCode, p.Answer)
		}

	default:
		r.errors.SendError(client.ID, msgUnknownEvent)
		return
	}

	if err != nil {
		r.errors.SendError(client.ID, errorMessage(err))
		zap.L().Debug("event rejected",
			zap.String("client", client.ID),
			zap.String("type", env.Type),
			zap.Error(err))
	}
}

func (r *EventRouter) Disconnect(ctx context.Context, clientID string) {
	r.usecase.Disconnect(ctx, clientID)
}

// errorMessage turns a use case error into the text of an error frame.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoQuestions):
		return msgNoQuestions
	case errors.Is(err, domain.ErrInvalidInput):
		return msgInvalidFormat
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrForbidden):
		return err.Error()
	default:
		zap.L().Error("Failed to handle event", zap.Error(err))
		return msgInternal
	}
}
