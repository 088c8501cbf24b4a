package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const examDateLayout = "2006-01-02"

// ExamDateResponse carries the configured exam date, empty when unset.
type ExamDateResponse struct {
	ExamDate string `json:"exam_date"`
}

// SetExamDateRequest is the payload for setting the exam date.
type SetExamDateRequest struct {
	ExamDate string `json:"exam_date"`
}

// GetExamDate returns the configured exam date.
// GET /api/v1/settings/exam-date
func (s *APIV1Service) GetExamDate(c echo.Context) error {
	ctx := c.Request().Context()

	examDate, err := s.Store.GetExamDate(ctx)
	if err != nil {
		slog.Error("failed to get exam date", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get exam date"})
	}
	resp := ExamDateResponse{}
	if examDate != nil {
		resp.ExamDate = examDate.Format(examDateLayout)
	}
	return c.JSON(http.StatusOK, resp)
}

// SetExamDate stores the exam date, expected as YYYY-MM-DD.
// PUT /api/v1/settings/exam-date
func (s *APIV1Service) SetExamDate(c echo.Context) error {
	ctx := c.Request().Context()

	var req SetExamDateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	examDate, err := time.ParseInLocation(examDateLayout, req.ExamDate, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "exam_date must be formatted as YYYY-MM-DD"})
	}
	if err := s.Store.SetExamDate(ctx, examDate); err != nil {
		slog.Error("failed to set exam date", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to set exam date"})
	}
	return c.JSON(http.StatusOK, ExamDateResponse{ExamDate: examDate.Format(examDateLayout)})
}

// DeleteExamDate clears the exam date.
// DELETE /api/v1/settings/exam-date
func (s *APIV1Service) DeleteExamDate(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.Store.ClearExamDate(ctx); err != nil {
		slog.Error("failed to clear exam date", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear exam date"})
	}
	return c.NoContent(http.StatusNoContent)
}
