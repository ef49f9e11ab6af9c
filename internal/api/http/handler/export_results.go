package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	httpUsecase "quiz-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"rank", "name", "score", "correct", "wrong"}

type ExportResultsRequest struct {
	RoomCode string `params:"room_code" validate:"required,alphanum,max=16"`
	Format   string `query:"format" validate:"omitempty,oneof=json csv"`
}

type ExportResultsResponse struct {
	*httpUsecase.RoomReport
}

type ExportResultsHandler struct {
	usecase httpUsecase.ExportResultsUseCase
}

func NewExportResultsHandler(usecase httpUsecase.ExportResultsUseCase) *ExportResultsHandler {
	return &ExportResultsHandler{
		usecase: usecase,
	}
}

func (h *ExportResultsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *ExportResultsRequest) (*ExportResultsResponse, int, error) {
	status, report, err := h.usecase.Execute(ctx, req.RoomCode)
	if err != nil {
		return nil, status, err
	}

	if req.Format != FormatCSV {
		return &ExportResultsResponse{RoomReport: report}, status, nil
	}

	body, err := encodeCSV(report)
	if err != nil {
		return nil, fiber.StatusInternalServerError, err
	}
	fbrCtx.Attachment(fmt.Sprintf("results_%s.csv", report.RoomCode))
	fbrCtx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	if err := fbrCtx.Status(status).Send(body); err != nil {
		return nil, fiber.StatusInternalServerError, err
	}
	return nil, status, nil
}

func encodeCSV(report *httpUsecase.RoomReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.Itoa(row.Score),
			strconv.Itoa(row.Correct),
			strconv.Itoa(row.Wrong),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
