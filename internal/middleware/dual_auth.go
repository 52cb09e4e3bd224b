package middleware

import (
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DualAuthMiddleware picks session or API token authentication per request
type DualAuthMiddleware struct {
	sessions *AuthMiddleware
	tokens   *APITokenAuthMiddleware
}

// NewDualAuthMiddleware creates a new DualAuthMiddleware
func NewDualAuthMiddleware(sessions *AuthMiddleware, tokens *APITokenAuthMiddleware) *DualAuthMiddleware {
	return &DualAuthMiddleware{sessions: sessions, tokens: tokens}
}

// credential extracts the caller's token and reports whether it is a brk_
// API secret. A bare secret without the Bearer scheme is accepted because
// Swagger UI and curl users paste it as is.
func credential(c echo.Context) (string, bool, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if domain.IsAPISecret(raw) {
		return raw, true, nil
	}
	token, err := bearerToken(c)
	if err != nil {
		return "", false, err
	}
	return token, domain.IsAPISecret(token), nil
}

// Authenticate accepts sessions and API tokens
func (m *DualAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return m.guard(true)
}

// JWTOnly rejects API tokens. Used for user, token and workspace management.
func (m *DualAuthMiddleware) JWTOnly() echo.MiddlewareFunc {
	return m.guard(false)
}

func (m *DualAuthMiddleware) guard(allowAPITokens bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, isAPISecret, err := credential(c)
			if err != nil {
				return unauthorizedError(c, err.Error())
			}

			if !isAPISecret {
				return m.sessions.authenticateWithToken(c, token, true, next)
			}
			if !allowAPITokens {
				log.Debug().Str("path", c.Path()).Msg("API token refused on session-only route")
				return unauthorizedError(c, "This endpoint requires session authentication")
			}
			return m.tokens.authenticateWithToken(c, token, next)
		}
	}
}
