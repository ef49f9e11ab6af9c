package httpUsecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"quiz-service/domain"
	"quiz-service/internal/api/game"
)

type RoomReport struct {
	RoomCode    string           `json:"room_code"`
	Category    string           `json:"category"`
	Status      string           `json:"status"`
	Total       int              `json:"total_questions"`
	GeneratedAt time.Time        `json:"generated_at"`
	Rows        []game.ReportRow `json:"rows"`
}

type ExportResultsUseCase interface {
	Execute(ctx context.Context, roomCode string) (int, *RoomReport, error)
}

type exportResultsUseCase struct {
	rooms RoomRegistry
	now   func() time.Time
}

func NewExportResultsUseCase(rooms RoomRegistry) ExportResultsUseCase {
	return &exportResultsUseCase{
		rooms: rooms,
		now:   time.Now,
	}
}

func (u *exportResultsUseCase) Execute(ctx context.Context, roomCode string) (int, *RoomReport, error) {
	room := u.rooms.GetRoom(strings.ToUpper(roomCode))
	if room == nil {
		return http.StatusNotFound, nil, domain.ErrRoomNotFound
	}

	return http.StatusOK, &RoomReport{
		RoomCode:    room.Code,
		Category:    room.Category,
		Status:      room.Status(),
		Total:       room.QuestionCount(),
		GeneratedAt: u.now().UTC(),
		Rows:        game.Report(room.Players()),
	}, nil
}
