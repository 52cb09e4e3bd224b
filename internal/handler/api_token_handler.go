package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const copySecretWarning = "Copy this API token now. It cannot be shown again."

// APITokenHandler serves integration token management for brokerage admins
type APITokenHandler struct {
	tokens *service.APITokenService
}

// NewAPITokenHandler creates a new APITokenHandler
func NewAPITokenHandler(tokens *service.APITokenService) *APITokenHandler {
	return &APITokenHandler{tokens: tokens}
}

// CreateAPITokenRequest names the integration a token is issued for
type CreateAPITokenRequest struct {
	Description string `json:"description" example:"Dealer portal sync"`
}

// APITokenResponse is a token as listed. The secret is never included.
type APITokenResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	TokenPrefix string     `json:"tokenPrefix" example:"brk_abcd1234..."`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
}

// IssuedAPITokenResponse carries the plaintext secret, returned exactly once
type IssuedAPITokenResponse struct {
	APITokenResponse
	Token   string `json:"token"`
	Warning string `json:"warning"`
}

func presentAPIToken(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:          t.ID,
		Description: t.Description,
		TokenPrefix: t.TokenPrefix,
		CreatedAt:   t.CreatedAt,
		LastUsedAt:  t.LastUsedAt,
	}
}

// CreateAPIToken godoc
// @Summary Issue an API token
// @Description Issue a token for an integration. The plaintext token is returned once. (admin, session auth only)
// @Tags api-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAPITokenRequest true "Integration description"
// @Success 201 {object} IssuedAPITokenResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /api-tokens [post]
func (h *APITokenHandler) CreateAPIToken(c echo.Context) error {
	actor, ok := middleware.GetPrincipal(c)
	if !ok || actor.WorkspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateAPITokenRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	token, secret, err := h.tokens.Issue(c.Request().Context(), actor, req.Description)
	if err != nil {
		return requestError(c, err, "issue API token")
	}

	return c.JSON(http.StatusCreated, IssuedAPITokenResponse{
		APITokenResponse: presentAPIToken(token),
		Token:            secret,
		Warning:          copySecretWarning,
	})
}

// GetAPITokens godoc
// @Summary List API tokens
// @Description Live tokens of the workspace, masked (admin, session auth only)
// @Tags api-tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} APITokenResponse
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /api-tokens [get]
func (h *APITokenHandler) GetAPITokens(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	tokens, err := h.tokens.List(c.Request().Context(), workspaceID)
	if err != nil {
		return requestError(c, err, "list API tokens")
	}

	out := make([]APITokenResponse, len(tokens))
	for i, t := range tokens {
		out[i] = presentAPIToken(t)
	}
	return c.JSON(http.StatusOK, out)
}

// RevokeAPIToken godoc
// @Summary Revoke an API token
// @Description Requests with the token fail from now on (admin, session auth only)
// @Tags api-tokens
// @Security BearerAuth
// @Param id path string true "Token ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /api-tokens/{id} [delete]
func (h *APITokenHandler) RevokeAPIToken(c echo.Context) error {
	actor, ok := middleware.GetPrincipal(c)
	if !ok || actor.WorkspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid token ID", nil)
	}

	if err := h.tokens.Revoke(c.Request().Context(), actor, tokenID); err != nil {
		return requestError(c, err, "revoke API token")
	}
	return c.NoContent(http.StatusNoContent)
}
