package handler

import (
	"net/http"
	"strconv"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PolicyHandler handles policy HTTP requests
type PolicyHandler struct {
	policyService *service.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler
func NewPolicyHandler(policyService *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// RatesRequest carries user-entered rates; omitted rates default from the
// insurance provider (tds, gst) and vehicle class (agent, our)
type RatesRequest struct {
	AgentRate *decimal.Decimal `json:"agentRate,omitempty"`
	OurRate   *decimal.Decimal `json:"ourRate,omitempty"`
	TDSRate   *decimal.Decimal `json:"tdsRate,omitempty"`
	GSTRate   *decimal.Decimal `json:"gstRate,omitempty"`
}

func (r RatesRequest) overrides() domain.RateOverrides {
	return domain.RateOverrides{
		AgentRate: r.AgentRate,
		OurRate:   r.OurRate,
		TDSRate:   r.TDSRate,
		GSTRate:   r.GSTRate,
	}
}

// CreatePolicyRequest represents the create policy request body. Derived
// amounts are always calculated server-side and cannot be sent.
type CreatePolicyRequest struct {
	Name              string              `json:"name"`
	PhoneNumber       string              `json:"phoneNumber,omitempty"`
	Email             string              `json:"email,omitempty"`
	Address           string              `json:"address"`
	PolicyNumber      string              `json:"policyNumber"`
	StartDate         string              `json:"startDate" example:"2024-01-01"`
	EndDate           string              `json:"endDate" example:"2025-01-01"`
	PremiumAmount     decimal.Decimal     `json:"premiumAmount" swaggertype:"string" example:"15000.00"`
	VehicleInfo       *domain.VehicleInfo `json:"vehicleInfo,omitempty"`
	Agent             int32               `json:"agent"`
	InsuranceProvider int32               `json:"insuranceProvider"`
	VehicleType       int32               `json:"vehicleType"`
	RatesRequest
}

// UpdatePolicyRequest represents the update policy request body; omitted fields are kept
type UpdatePolicyRequest struct {
	Name              *string             `json:"name,omitempty"`
	PhoneNumber       *string             `json:"phoneNumber,omitempty"`
	Email             *string             `json:"email,omitempty"`
	Address           *string             `json:"address,omitempty"`
	PolicyNumber      *string             `json:"policyNumber,omitempty"`
	StartDate         *string             `json:"startDate,omitempty"`
	EndDate           *string             `json:"endDate,omitempty"`
	PremiumAmount     *decimal.Decimal    `json:"premiumAmount,omitempty" swaggertype:"string"`
	VehicleInfo       *domain.VehicleInfo `json:"vehicleInfo,omitempty"`
	ClearVehicleInfo  bool                `json:"clearVehicleInfo,omitempty"`
	Agent             *int32              `json:"agent,omitempty"`
	InsuranceProvider *int32              `json:"insuranceProvider,omitempty"`
	VehicleType       *int32              `json:"vehicleType,omitempty"`
	RatesRequest
}

// CalculateRequest represents a quote request
type CalculateRequest struct {
	PremiumAmount     decimal.Decimal `json:"premiumAmount" swaggertype:"string"`
	InsuranceProvider *int32          `json:"insuranceProvider,omitempty"`
	VehicleType       *int32          `json:"vehicleType,omitempty"`
	RatesRequest
}

// CreatePolicy godoc
// @Summary Create a policy
// @Description Rates default from the insurance provider and vehicle class; derived amounts are calculated
// @Tags policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePolicyRequest true "Policy"
// @Success 201 {object} PolicyResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /policies [post]
func (h *PolicyHandler) CreatePolicy(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreatePolicyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	startDate := parseBodyDate("startDate", req.StartDate, &errs)
	endDate := parseBodyDate("endDate", req.EndDate, &errs)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	policy, err := h.policyService.CreatePolicy(workspaceID, middleware.GetUserID(c), service.CreatePolicyInput{
		Name:           req.Name,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Address:        req.Address,
		PolicyNumber:   req.PolicyNumber,
		StartDate:      startDate,
		EndDate:        endDate,
		PremiumAmount:  req.PremiumAmount,
		VehicleInfo:    req.VehicleInfo,
		AgentID:        req.Agent,
		ProviderID:     req.InsuranceProvider,
		VehicleClassID: req.VehicleType,
		Rates:          req.overrides(),
	})
	if err != nil {
		return requestError(c, err, "create policy")
	}

	return c.JSON(http.StatusCreated, toPolicyResponse(policy))
}

// GetPolicies godoc
// @Summary List policies
// @Tags policies
// @Produce json
// @Security BearerAuth
// @Param search query string false "Policy number, holder name, phone or email"
// @Param status query string false "active, expiring-soon or expired"
// @Param agent query int false "Agent ID"
// @Param insuranceProvider query int false "Insurance provider ID"
// @Param vehicleType query int false "Vehicle class ID"
// @Param startDateFrom query string false "Earliest start date (YYYY-MM-DD)"
// @Param startDateTo query string false "Latest start date (YYYY-MM-DD)"
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "createdAt, startDate, endDate, premiumAmount, policyNumber or name"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} domain.Page[PolicyResponse]
// @Failure 400 {object} ProblemDetails
// @Router /policies [get]
func (h *PolicyHandler) GetPolicies(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	params, errs := parseListParams(c)
	filter := domain.PolicyFilter{
		ListParams: params,
		Status:     domain.PolicyStatus(c.QueryParam("status")),
	}

	var idErrs []ValidationError
	filter.AgentID, idErrs = parseOptionalID(c, "agent")
	errs = append(errs, idErrs...)
	filter.ProviderID, idErrs = parseOptionalID(c, "insuranceProvider")
	errs = append(errs, idErrs...)
	filter.VehicleClassID, idErrs = parseOptionalID(c, "vehicleType")
	errs = append(errs, idErrs...)

	var badDate *ValidationError
	if filter.StartDateFrom, badDate = parseOptionalQueryDate(c, "startDateFrom"); badDate != nil {
		errs = append(errs, *badDate)
	}
	if filter.StartDateTo, badDate = parseQueryRangeEnd(c, "startDateTo"); badDate != nil {
		errs = append(errs, *badDate)
	}

	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	page, err := h.policyService.GetPolicies(workspaceID, filter)
	if err != nil {
		return requestError(c, err, "get policies")
	}
	return c.JSON(http.StatusOK, toPolicyPage(page))
}

// GetPolicy handles GET /api/v1/policies/:id
func (h *PolicyHandler) GetPolicy(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}

	policy, err := h.policyService.GetPolicyByID(workspaceID, id)
	if err != nil {
		return requestError(c, err, "get policy")
	}
	return c.JSON(http.StatusOK, toPolicyResponse(policy))
}

// UpdatePolicy handles PUT /api/v1/policies/:id. Any change to the premium or
// a rate recalculates every derived amount.
func (h *PolicyHandler) UpdatePolicy(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}

	var req UpdatePolicyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	startDate := parseOptionalBodyDate("startDate", req.StartDate, &errs)
	endDate := parseOptionalBodyDate("endDate", req.EndDate, &errs)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	policy, err := h.policyService.UpdatePolicy(workspaceID, id, middleware.GetUserID(c), service.UpdatePolicyInput{
		Name:             req.Name,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		Address:          req.Address,
		PolicyNumber:     req.PolicyNumber,
		StartDate:        startDate,
		EndDate:          endDate,
		PremiumAmount:    req.PremiumAmount,
		VehicleInfo:      req.VehicleInfo,
		ClearVehicleInfo: req.ClearVehicleInfo,
		AgentID:          req.Agent,
		ProviderID:       req.InsuranceProvider,
		VehicleClassID:   req.VehicleType,
		Rates:            req.overrides(),
	})
	if err != nil {
		return requestError(c, err, "update policy")
	}

	return c.JSON(http.StatusOK, toPolicyResponse(policy))
}

// DeletePolicy handles DELETE /api/v1/policies/:id
func (h *PolicyHandler) DeletePolicy(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}

	if err := h.policyService.DeletePolicy(workspaceID, id); err != nil {
		return requestError(c, err, "delete policy")
	}

	return c.NoContent(http.StatusNoContent)
}

// Calculate godoc
// @Summary Preview policy calculations
// @Description Computes derived amounts for a premium without storing anything
// @Tags policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CalculateRequest true "Quote"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} ProblemDetails
// @Router /policies/calculate [post]
func (h *PolicyHandler) Calculate(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CalculateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	quote, err := h.policyService.Preview(workspaceID, service.PreviewInput{
		PremiumAmount:  req.PremiumAmount,
		ProviderID:     req.InsuranceProvider,
		VehicleClassID: req.VehicleType,
		Rates:          req.overrides(),
	})
	if err != nil {
		return requestError(c, err, "calculate policy")
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		PremiumAmount: money(quote.PremiumAmount),
		Rates:         toRatesResponse(quote.Rates),
		Fields:        toDerivedFieldsResponse(quote.Fields),
	})
}

// GetExpiringPolicies handles GET /api/v1/policies/expiring?days=30
func (h *PolicyHandler) GetExpiringPolicies(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var days int32
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			return NewValidationError(c, "Invalid days", []ValidationError{{Field: "days", Message: "must be between 1 and 365"}})
		}
		days = int32(parsed)
	}

	policies, err := h.policyService.GetExpiringPolicies(workspaceID, days)
	if err != nil {
		return requestError(c, err, "get expiring policies")
	}
	return c.JSON(http.StatusOK, toPolicyResponses(policies))
}

// GetStatistics handles GET /api/v1/policies/statistics
func (h *PolicyHandler) GetStatistics(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	stats, err := h.policyService.GetStatistics(workspaceID)
	if err != nil {
		return requestError(c, err, "get policy statistics")
	}
	return c.JSON(http.StatusOK, stats)
}
