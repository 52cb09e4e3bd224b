package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler handles workspace member management, the caller's own profile
// and the workspace name
type UserHandler struct {
	userService      *service.UserService
	workspaceService *service.WorkspaceService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, workspaceService *service.WorkspaceService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		workspaceService: workspaceService,
	}
}

// InviteUserRequest represents the invite user request body
type InviteUserRequest struct {
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Username    string          `json:"username"`
	Role        domain.UserRole `json:"role,omitempty" enums:"admin,sub-user"`
}

// UpdateUserRequest represents the update user request body; omitted fields are kept
type UpdateUserRequest struct {
	Name        *string          `json:"name,omitempty"`
	PhoneNumber *string          `json:"phoneNumber,omitempty"`
	Username    *string          `json:"username,omitempty"`
	Role        *domain.UserRole `json:"role,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// UpdateProfileRequest represents the update profile request body
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// RenameWorkspaceRequest represents the rename workspace request body
type RenameWorkspaceRequest struct {
	Name string `json:"name"`
}

func principalOf(c echo.Context) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	return principal, ok && principal.WorkspaceID != 0
}

// InviteUser godoc
// @Summary Invite a user
// @Description Creates a pending member that is linked on first sign-in (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InviteUserRequest true "Invitation"
// @Success 201 {object} domain.User
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /users [post]
func (h *UserHandler) InviteUser(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req InviteUserRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.userService.InviteUser(actor, service.InviteUserInput{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		Role:        req.Role,
	})
	if err != nil {
		return requestError(c, err, "invite user")
	}

	return c.JSON(http.StatusCreated, user)
}

// ListUsers handles GET /api/v1/users (admin only)
func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	users, err := h.userService.ListUsers(actor)
	if err != nil {
		return requestError(c, err, "list users")
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/v1/users/:id (admin only). Admins cannot demote
// or deactivate themselves.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.userService.UpdateUser(actor, id, service.UpdateUserInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		Role:        req.Role,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return requestError(c, err, "update user")
	}

	return c.JSON(http.StatusOK, user)
}

// DeactivateUser handles DELETE /api/v1/users/:id (admin only)
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	if err := h.userService.DeactivateUser(actor, id); err != nil {
		return requestError(c, err, "deactivate user")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProfile handles GET /api/v1/profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	user, err := h.userService.GetUser(actor.WorkspaceID, actor.UserID)
	if err != nil {
		return requestError(c, err, "get profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.userService.UpdateProfile(actor, service.UpdateProfileInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return requestError(c, err, "update profile")
	}
	return c.JSON(http.StatusOK, user)
}

// RenameWorkspace handles PUT /api/v1/workspace (admin only)
func (h *UserHandler) RenameWorkspace(c echo.Context) error {
	actor, ok := principalOf(c)
	if !ok {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req RenameWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	workspace, err := h.workspaceService.RenameWorkspace(actor, req.Name)
	if err != nil {
		return requestError(c, err, "rename workspace")
	}

	return c.JSON(http.StatusOK, workspace)
}
