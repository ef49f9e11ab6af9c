package httpUsecase

import (
	"context"
	"net/http"
	"strings"

	"quiz-service/domain"
	"quiz-service/internal/api/game"
)

type Leaderboard struct {
	RoomCode string        `json:"room_code"`
	Category string        `json:"category"`
	Status   string        `json:"status"`
	Players  []game.Player `json:"players"`
}

type GetLeaderboardUseCase interface {
	Execute(ctx context.Context, roomCode string) (int, *Leaderboard, error)
}

type getLeaderboardUseCase struct {
	rooms RoomRegistry
}

func NewGetLeaderboardUseCase(rooms RoomRegistry) GetLeaderboardUseCase {
	return &getLeaderboardUseCase{
		rooms: rooms,
	}
}

func (u *getLeaderboardUseCase) Execute(ctx context.Context, roomCode string) (int, *Leaderboard, error) {
	room := u.rooms.GetRoom(strings.ToUpper(roomCode))
	if room == nil {
		return http.StatusNotFound, nil, domain.ErrRoomNotFound
	}

	return http.StatusOK, &Leaderboard{
		RoomCode: room.Code,
		Category: room.Category,
		Status:   room.Status(),
		Players:  room.Leaderboard(),
	}, nil
}
