package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Workspace totals and the newest policies, optionally for policies starting within a date range
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} DashboardSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	from, to, errs := parseDateRange(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), workspaceID, domain.DateRange{From: from, To: to})
	if err != nil {
		return requestError(c, err, "get dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}
