package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/server/internal/observability"
)

// MetricsResponse reports in-process request counters.
type MetricsResponse struct {
	*observability.MetricsSnapshot
	SuccessRate float64 `json:"success_rate"`
}

// GetMetrics returns request counters since process start.
// GET /api/v1/metrics
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	snapshot := observability.GlobalMetrics().Snapshot()
	return c.JSON(http.StatusOK, MetricsResponse{
		MetricsSnapshot: snapshot,
		SuccessRate:     snapshot.SuccessRate(),
	})
}
