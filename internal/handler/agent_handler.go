package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AgentHandler handles agent HTTP requests
type AgentHandler struct {
	agentService *service.AgentService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// CreateAgentRequest represents the create agent request body
type CreateAgentRequest struct {
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Email       string          `json:"email,omitempty"`
	Location    domain.Location `json:"location"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

// LocationPatch carries the location fields of a partial agent update
type LocationPatch struct {
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
}

// UpdateAgentRequest represents the update agent request body
type UpdateAgentRequest struct {
	Name        *string        `json:"name,omitempty"`
	PhoneNumber *string        `json:"phoneNumber,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Location    *LocationPatch `json:"location,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// CreateAgent handles POST /api/v1/agents
func (h *AgentHandler) CreateAgent(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	agent, err := h.agentService.CreateAgent(workspaceID, middleware.GetUserID(c), service.CreateAgentInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Location:    req.Location,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "create agent")
	}

	return c.JSON(http.StatusCreated, agent)
}

// GetAgents handles GET /api/v1/agents. Search matches name, phone, email, city and state.
func (h *AgentHandler) GetAgents(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	params, errs := parseListParams(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	page, err := h.agentService.GetAgents(workspaceID, params)
	if err != nil {
		return requestError(c, err, "get agents")
	}
	return c.JSON(http.StatusOK, page)
}

// GetAgent handles GET /api/v1/agents/:id
func (h *AgentHandler) GetAgent(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid agent ID", nil)
	}

	agent, err := h.agentService.GetAgentByID(workspaceID, id)
	if err != nil {
		return requestError(c, err, "get agent")
	}
	return c.JSON(http.StatusOK, agent)
}

// UpdateAgent handles PUT /api/v1/agents/:id
func (h *AgentHandler) UpdateAgent(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid agent ID", nil)
	}

	var req UpdateAgentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateAgentInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsActive:    req.IsActive,
	}
	if req.Location != nil {
		input.Address = req.Location.Address
		input.City = req.Location.City
		input.State = req.Location.State
	}

	agent, err := h.agentService.UpdateAgent(workspaceID, id, middleware.GetUserID(c), input)
	if err != nil {
		return requestError(c, err, "update agent")
	}

	return c.JSON(http.StatusOK, agent)
}

// DeleteAgent handles DELETE /api/v1/agents/:id
func (h *AgentHandler) DeleteAgent(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid agent ID", nil)
	}

	if err := h.agentService.DeleteAgent(workspaceID, id); err != nil {
		return requestError(c, err, "delete agent")
	}

	return c.NoContent(http.StatusNoContent)
}
