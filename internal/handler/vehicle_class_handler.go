package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// VehicleClassHandler handles vehicle class HTTP requests
type VehicleClassHandler struct {
	vehicleClassService *service.VehicleClassService
}

// NewVehicleClassHandler creates a new VehicleClassHandler
func NewVehicleClassHandler(vehicleClassService *service.VehicleClassService) *VehicleClassHandler {
	return &VehicleClassHandler{vehicleClassService: vehicleClassService}
}

// CreateVehicleClassRequest represents the create vehicle class request body
type CreateVehicleClassRequest struct {
	Name           string          `json:"name"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	AgentRate      decimal.Decimal `json:"agentRate"`
	OurRate        decimal.Decimal `json:"ourRate"`
	IsActive       *bool           `json:"isActive,omitempty"`
}

// UpdateVehicleClassRequest represents the update vehicle class request body
type UpdateVehicleClassRequest struct {
	Name           *string          `json:"name,omitempty"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
	AgentRate      *decimal.Decimal `json:"agentRate,omitempty"`
	OurRate        *decimal.Decimal `json:"ourRate,omitempty"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

// CreateVehicleClass handles POST /api/v1/vehicle-classes
func (h *VehicleClassHandler) CreateVehicleClass(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateVehicleClassRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	vc, err := h.vehicleClassService.CreateVehicleClass(workspaceID, middleware.GetUserID(c), service.CreateVehicleClassInput{
		Name:           req.Name,
		CommissionRate: req.CommissionRate,
		AgentRate:      req.AgentRate,
		OurRate:        req.OurRate,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "create vehicle class")
	}

	return c.JSON(http.StatusCreated, vc)
}

// GetVehicleClasses handles GET /api/v1/vehicle-classes
func (h *VehicleClassHandler) GetVehicleClasses(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	params, errs := parseListParams(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	page, err := h.vehicleClassService.GetVehicleClasses(workspaceID, params)
	if err != nil {
		return requestError(c, err, "get vehicle classes")
	}
	return c.JSON(http.StatusOK, page)
}

// GetVehicleClass handles GET /api/v1/vehicle-classes/:id
func (h *VehicleClassHandler) GetVehicleClass(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid vehicle class ID", nil)
	}

	vc, err := h.vehicleClassService.GetVehicleClassByID(workspaceID, id)
	if err != nil {
		return requestError(c, err, "get vehicle class")
	}
	return c.JSON(http.StatusOK, vc)
}

// UpdateVehicleClass handles PUT /api/v1/vehicle-classes/:id
func (h *VehicleClassHandler) UpdateVehicleClass(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid vehicle class ID", nil)
	}

	var req UpdateVehicleClassRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	vc, err := h.vehicleClassService.UpdateVehicleClass(workspaceID, id, middleware.GetUserID(c), service.UpdateVehicleClassInput{
		Name:           req.Name,
		CommissionRate: req.CommissionRate,
		AgentRate:      req.AgentRate,
		OurRate:        req.OurRate,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "update vehicle class")
	}

	return c.JSON(http.StatusOK, vc)
}

// DeleteVehicleClass handles DELETE /api/v1/vehicle-classes/:id
func (h *VehicleClassHandler) DeleteVehicleClass(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid vehicle class ID", nil)
	}

	if err := h.vehicleClassService.DeleteVehicleClass(workspaceID, id); err != nil {
		return requestError(c, err, "delete vehicle class")
	}

	return c.NoContent(http.StatusNoContent)
}
