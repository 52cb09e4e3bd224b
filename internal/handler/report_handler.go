package handler

import (
	"fmt"
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler serves the per-agent, per-provider and per-vehicle-class
// transaction reports as JSON or as xlsx downloads
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// AgentCommissions godoc
// @Summary Agent commission report
// @Description Policies of an agent starting within the range, with totals. startDate is required; endDate defaults to now.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agent ID"
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /agents/{id}/commissions [get]
func (h *ReportHandler) AgentCommissions(c echo.Context) error {
	return h.serve(c, domain.ReportByAgent, false)
}

// ExportAgentCommissions handles GET /api/v1/agents/:id/commissions/export
func (h *ReportHandler) ExportAgentCommissions(c echo.Context) error {
	return h.serve(c, domain.ReportByAgent, true)
}

// ProviderTransactions handles GET /api/v1/insurance-providers/:id/transactions
func (h *ReportHandler) ProviderTransactions(c echo.Context) error {
	return h.serve(c, domain.ReportByProvider, false)
}

// ExportProviderTransactions handles GET /api/v1/insurance-providers/:id/transactions/export
func (h *ReportHandler) ExportProviderTransactions(c echo.Context) error {
	return h.serve(c, domain.ReportByProvider, true)
}

// VehicleClassTransactions handles GET /api/v1/vehicle-classes/:id/transactions
func (h *ReportHandler) VehicleClassTransactions(c echo.Context) error {
	return h.serve(c, domain.ReportByVehicleClass, false)
}

// ExportVehicleClassTransactions handles GET /api/v1/vehicle-classes/:id/transactions/export
func (h *ReportHandler) ExportVehicleClassTransactions(c echo.Context) error {
	return h.serve(c, domain.ReportByVehicleClass, true)
}

func (h *ReportHandler) serve(c echo.Context, kind domain.ReportKind, export bool) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	subjectID, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid ID", nil)
	}

	start, end, errs := parseDateRange(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	report, err := h.reportService.Transactions(workspaceID, kind, subjectID, domain.ReportRange{StartDate: start, EndDate: end})
	if err != nil {
		return requestError(c, err, "build report")
	}

	if !export {
		return c.JSON(http.StatusOK, toReportResponse(report))
	}

	data, err := service.ExportReport(report)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("kind", string(kind)).Int32("subject_id", subjectID).Msg("Failed to export report")
		return NewInternalError(c, "Failed to export report")
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("kind", string(kind)).
		Int32("subject_id", subjectID).
		Int("rows", len(report.Policies)).
		Msg("Report exported")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", service.ReportFileName(report)))
	return c.Blob(http.StatusOK, service.XLSXContentType, data)
}
