package handler

import (
	"context"

	httpUsecase "quiz-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetLeaderboardRequest struct {
	RoomCode string `params:"room_code" validate:"required,alphanum,max=16"`
}

type GetLeaderboardResponse struct {
	*httpUsecase.Leaderboard
}

type GetLeaderboardHandler struct {
	usecase httpUsecase.GetLeaderboardUseCase
}

func NewGetLeaderboardHandler(usecase httpUsecase.GetLeaderboardUseCase) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		usecase: usecase,
	}
}

func (h *GetLeaderboardHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetLeaderboardRequest) (*GetLeaderboardResponse, int, error) {
	status, board, err := h.usecase.Execute(ctx, req.RoomCode)
	if err != nil {
		return nil, status, err
	}
	return &GetLeaderboardResponse{Leaderboard: board}, status, nil
}
