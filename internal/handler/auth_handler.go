package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler serves sign-in and the current session
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SessionResponse is the signed-in user and their brokerage
type SessionResponse struct {
	User       *domain.User      `json:"user"`
	Workspace  *domain.Workspace `json:"workspace"`
	IsNewUser  bool              `json:"isNewUser"`
	Onboarding string            `json:"onboarding" enums:"returning,invited,founded"`
}

func presentSession(r *service.AuthResult) SessionResponse {
	return SessionResponse{
		User:       r.User,
		Workspace:  r.Workspace,
		IsNewUser:  r.IsNewUser(),
		Onboarding: string(r.Onboarding),
	}
}

// optional turns an empty claim into nil
func optional(claim string) *string {
	if claim = strings.TrimSpace(claim); claim == "" {
		return nil
	}
	return &claim
}

// Callback godoc
// @Summary Complete sign-in
// @Description Called by the frontend after Auth0 sign-in. Links the subject to its user, claims a pending invitation for the email, or founds a new brokerage with the caller as admin.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /auth/callback [post]
func (h *AuthHandler) Callback(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		log.Error().Msg("Auth callback reached without a token subject")
		return NewUnauthorizedError(c, "Authentication required")
	}

	profile := middleware.GetCustomClaims(c)
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		log.Warn().Str("auth0_id", subject).Msg("Sign-in token carries no email claim")
		return NewValidationError(c, "Email is required for authentication", []ValidationError{
			{Field: "email", Message: "Email claim is missing from token"},
		})
	}

	result, err := h.auth.AuthenticateUser(subject, profile.Email, optional(profile.Name), optional(profile.Picture))
	if err != nil {
		return requestError(c, err, "complete sign-in")
	}

	if result.IsNewUser() {
		log.Info().
			Str("user_id", result.User.ID.String()).
			Int32("workspace_id", result.Workspace.ID).
			Str("onboarding", string(result.Onboarding)).
			Msg("First sign-in")
	}
	return c.JSON(http.StatusOK, presentSession(result))
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	session, err := h.auth.CurrentSession(subject)
	if err != nil {
		return requestError(c, err, "load session")
	}
	return c.JSON(http.StatusOK, presentSession(session))
}
