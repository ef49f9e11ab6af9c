package httpUsecase

import (
	"context"
	"net/http"
)

type GetCategoriesUseCase interface {
	Execute(ctx context.Context) (int, []string, error)
}

type getCategoriesUseCase struct {
	repository CategoryRepository
}

func NewGetCategoriesUseCase(repository CategoryRepository) GetCategoriesUseCase {
	return &getCategoriesUseCase{
		repository: repository,
	}
}

func (u *getCategoriesUseCase) Execute(ctx context.Context) (int, []string, error) {
	categories, err := u.repository.GetCategories(ctx)
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}
	return http.StatusOK, categories, nil
}
