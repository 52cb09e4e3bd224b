package middleware

import (
	"context"
	"errors"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// APITokenIDKey is the context key for the API token ID
	APITokenIDKey contextKey = "api_token_id"
	// IsAPITokenAuthKey is the context key indicating API token authentication
	IsAPITokenAuthKey contextKey = "is_api_token_auth"
)

// APITokenResolver maps a presented brk_ secret to its live token
type APITokenResolver interface {
	Resolve(ctx context.Context, secret string) (*domain.APIToken, error)
}

// APITokenAuthMiddleware authenticates integrations by API token
type APITokenAuthMiddleware struct {
	tokens APITokenResolver
}

// NewAPITokenAuthMiddleware creates a new APITokenAuthMiddleware
func NewAPITokenAuthMiddleware(tokens APITokenResolver) *APITokenAuthMiddleware {
	return &APITokenAuthMiddleware{tokens: tokens}
}

// Authenticate returns an Echo middleware that validates API tokens
func (m *APITokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return unauthorizedError(c, err.Error())
			}
			if !domain.IsAPISecret(token) {
				return unauthorizedError(c, "Invalid token format")
			}
			return m.authenticateWithToken(c, token, next)
		}
	}
}

func (m *APITokenAuthMiddleware) authenticateWithToken(c echo.Context, token string, next echo.HandlerFunc) error {
	apiToken, err := m.tokens.Resolve(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrAPITokenNotFound) {
			log.Debug().Msg("API token not found or revoked")
			return unauthorizedError(c, "Invalid or revoked API token")
		}
		log.Error().Err(err).Msg("API token lookup failed")
		return internalError(c)
	}

	// Tokens act as the workspace with the sub-user role
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, PrincipalKey, apiToken.Principal())
	ctx = context.WithValue(ctx, APITokenIDKey, apiToken.ID)
	ctx = context.WithValue(ctx, IsAPITokenAuthKey, true)
	c.SetRequest(c.Request().WithContext(ctx))

	log.Debug().
		Int32("workspace_id", apiToken.WorkspaceID).
		Str("token_id", apiToken.ID.String()).
		Msg("API token authentication successful")

	return next(c)
}

// GetAPITokenID extracts the API token ID from the context
func GetAPITokenID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(APITokenIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// IsAPITokenAuth checks if the request was authenticated via API token
func IsAPITokenAuth(c echo.Context) bool {
	if isAPIToken, ok := c.Request().Context().Value(IsAPITokenAuthKey).(bool); ok {
		return isAPIToken
	}
	return false
}
