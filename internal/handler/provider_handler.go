package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProviderHandler handles insurance provider HTTP requests
type ProviderHandler struct {
	providerService *service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// CreateProviderRequest represents the create provider request body.
// Rates are percentages and may be sent as numbers or strings.
type CreateProviderRequest struct {
	Name      string          `json:"name"`
	AgentRate decimal.Decimal `json:"agentRate"`
	OurRate   decimal.Decimal `json:"ourRate"`
	TDS       decimal.Decimal `json:"tds"`
	GST       decimal.Decimal `json:"gst"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

// UpdateProviderRequest represents the update provider request body; omitted fields are kept
type UpdateProviderRequest struct {
	Name      *string          `json:"name,omitempty"`
	AgentRate *decimal.Decimal `json:"agentRate,omitempty"`
	OurRate   *decimal.Decimal `json:"ourRate,omitempty"`
	TDS       *decimal.Decimal `json:"tds,omitempty"`
	GST       *decimal.Decimal `json:"gst,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

// CreateProvider godoc
// @Summary Create an insurance provider
// @Tags insurance-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProviderRequest true "Provider"
// @Success 201 {object} domain.Provider
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /insurance-providers [post]
func (h *ProviderHandler) CreateProvider(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateProviderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	provider, err := h.providerService.CreateProvider(workspaceID, middleware.GetUserID(c), service.CreateProviderInput{
		Name:      req.Name,
		AgentRate: req.AgentRate,
		OurRate:   req.OurRate,
		TDS:       req.TDS,
		GST:       req.GST,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "create insurance provider")
	}

	return c.JSON(http.StatusCreated, provider)
}

// GetProviders godoc
// @Summary List insurance providers
// @Tags insurance-providers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name contains"
// @Param isActive query bool false "Filter by active flag"
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "name, createdAt or updatedAt"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} domain.Page[domain.Provider]
// @Router /insurance-providers [get]
func (h *ProviderHandler) GetProviders(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	params, errs := parseListParams(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	page, err := h.providerService.GetProviders(workspaceID, params)
	if err != nil {
		return requestError(c, err, "get insurance providers")
	}
	return c.JSON(http.StatusOK, page)
}

// GetProvider handles GET /api/v1/insurance-providers/:id
func (h *ProviderHandler) GetProvider(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid provider ID", nil)
	}

	provider, err := h.providerService.GetProviderByID(workspaceID, id)
	if err != nil {
		return requestError(c, err, "get insurance provider")
	}
	return c.JSON(http.StatusOK, provider)
}

// UpdateProvider handles PUT /api/v1/insurance-providers/:id
func (h *ProviderHandler) UpdateProvider(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid provider ID", nil)
	}

	var req UpdateProviderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	provider, err := h.providerService.UpdateProvider(workspaceID, id, middleware.GetUserID(c), service.UpdateProviderInput{
		Name:      req.Name,
		AgentRate: req.AgentRate,
		OurRate:   req.OurRate,
		TDS:       req.TDS,
		GST:       req.GST,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "update insurance provider")
	}

	return c.JSON(http.StatusOK, provider)
}

// DeleteProvider handles DELETE /api/v1/insurance-providers/:id
func (h *ProviderHandler) DeleteProvider(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid provider ID", nil)
	}

	if err := h.providerService.DeleteProvider(workspaceID, id); err != nil {
		return requestError(c, err, "delete insurance provider")
	}
	return c.NoContent(http.StatusNoContent)
}
