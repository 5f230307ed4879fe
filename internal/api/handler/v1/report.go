package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"barvid/internal/api/handler/v1/response"
	"barvid/internal/domain"
)

type ReportService interface {
	DashboardSummary(ctx context.Context) (domain.DashboardSummary, error)
	DailyLog(ctx context.Context, date string, movementType domain.MovementType) ([]domain.StockLogEntry, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleDashboardSummary godoc
// @Summary      Dashboard stock summary
// @Description  Total stock plus today's stock-in and stock-out figures.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  domain.DashboardSummary
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/dashboard-summary [get]
// @Security BearerAuth
func (h *ReportHandler) HandleDashboardSummary(ctx *gin.Context) {
	summary, err := h.svc.DashboardSummary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboardSummary -> h.svc.DashboardSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleDailyLog godoc
// @Summary      Movement log for one day
// @Description  Ledger entries for the given date, filtered by movement type. Unknown types yield an empty list.
// @Tags         reports
// @Produce      json
// @Param        date  query     string true "calendar date (YYYY-MM-DD)"
// @Param        type  query     string true "stock-in or stock-out"
// @Success      200  {array}   domain.StockLogEntry
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/daily-log [get]
// @Security BearerAuth
func (h *ReportHandler) HandleDailyLog(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("date is required")))
		return
	}

	movementType := domain.MovementType(ctx.Query("type"))

	entries, err := h.svc.DailyLog(ctx.Request.Context(), date, movementType)
	if err != nil {
		err = fmt.Errorf("v1.HandleDailyLog -> h.svc.DailyLog -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
