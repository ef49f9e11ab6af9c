package handler

import (
	"context"

	httpUsecase "quiz-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type GetCategoriesHandler struct {
	usecase httpUsecase.GetCategoriesUseCase
}

func NewGetCategoriesHandler(usecase httpUsecase.GetCategoriesUseCase) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		usecase: usecase,
	}
}

func (h *GetCategoriesHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, int, error) {
	status, categories, err := h.usecase.Execute(ctx)
	if err != nil {
		return nil, status, err
	}
	return &GetCategoriesResponse{Categories: categories}, status, nil
}
