package middleware

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// Auth0IDKey is the context key for the Auth0 user ID (subject)
	Auth0IDKey contextKey = "auth0_id"
	// PrincipalKey is the context key for the resolved caller
	PrincipalKey contextKey = "principal"
)

var errInvalidAuthHeader = errors.New("invalid authorization header format")

// TokenValidator validates a raw JWT; *validator.Validator satisfies it
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// PrincipalProvider resolves a token subject to a workspace member
type PrincipalProvider interface {
	GetPrincipal(auth0ID string) (domain.Principal, error)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator  TokenValidator
	principals PrincipalProvider
}

// NewAuth0Validator builds the RS256 validator for session tokens issued by the
// Auth0 tenant. Signing keys are fetched from the tenant JWKS and cached.
func NewAuth0Validator(domainName, audience string) (*validator.Validator, error) {
	issuerURL, err := url.Parse("https://" + domainName + "/")
	if err != nil {
		return nil, err
	}

	keys := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	return validator.New(
		keys.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(domainName, audience string, principals PrincipalProvider) (*AuthMiddleware, error) {
	sessions, err := NewAuth0Validator(domainName, audience)
	if err != nil {
		return nil, err
	}
	return NewAuthMiddlewareWithValidator(sessions, principals), nil
}

// NewAuthMiddlewareWithValidator builds the middleware around any token validator
func NewAuthMiddlewareWithValidator(tokenValidator TokenValidator, principals PrincipalProvider) *AuthMiddleware {
	return &AuthMiddleware{validator: tokenValidator, principals: principals}
}

// Authenticate validates the bearer JWT and resolves the caller to an active workspace member
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return unauthorizedError(c, err.Error())
			}
			return m.authenticateWithToken(c, token, true, next)
		}
	}
}

// IdentityOnly validates the JWT without requiring a linked user. It guards the
// sign-in callback, which is where the link is made.
func (m *AuthMiddleware) IdentityOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return unauthorizedError(c, err.Error())
			}
			return m.authenticateWithToken(c, token, false, next)
		}
	}
}

func (m *AuthMiddleware) authenticateWithToken(c echo.Context, token string, resolvePrincipal bool, next echo.HandlerFunc) error {
	claims, err := m.validator.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return unauthorizedError(c, "Invalid token")
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return unauthorizedError(c, "Invalid claims")
	}

	auth0ID := validatedClaims.RegisteredClaims.Subject
	ctx := context.WithValue(c.Request().Context(), ClaimsKey, validatedClaims)
	ctx = context.WithValue(ctx, Auth0IDKey, auth0ID)

	if resolvePrincipal {
		principal, err := m.principals.GetPrincipal(auth0ID)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			log.Debug().Str("auth0_id", auth0ID).Msg("Token subject is not linked to a user")
			return unauthorizedError(c, "User is not registered")
		case errors.Is(err, domain.ErrUserInactive):
			return forbiddenError(c, "User is deactivated")
		case err != nil:
			log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Principal lookup failed")
			return internalError(c)
		}
		ctx = context.WithValue(ctx, PrincipalKey, principal)
	}

	c.SetRequest(c.Request().WithContext(ctx))
	return next(c)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidAuthHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

// GetAuth0ID extracts the Auth0 user ID from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetCustomClaims extracts the custom claims from the context
func GetCustomClaims(c echo.Context) *CustomClaims {
	claims := GetClaims(c)
	if claims == nil {
		return nil
	}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok {
		return custom
	}
	return nil
}

// GetPrincipal returns the caller resolved by the auth middleware
func GetPrincipal(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Request().Context().Value(PrincipalKey).(domain.Principal)
	return principal, ok
}

// GetWorkspaceID extracts the caller's workspace ID from the context
func GetWorkspaceID(c echo.Context) int32 {
	principal, _ := GetPrincipal(c)
	return principal.WorkspaceID
}

// GetUserID extracts the caller's user ID from the context
func GetUserID(c echo.Context) uuid.UUID {
	principal, _ := GetPrincipal(c)
	return principal.UserID
}

// RequireAdmin rejects callers without the admin role. Must run after authentication.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return unauthorizedError(c, "Authentication required")
			}
			if !principal.IsAdmin() {
				log.Debug().
					Int32("workspace_id", principal.WorkspaceID).
					Str("user_id", principal.UserID.String()).
					Msg("Admin route refused")
				return forbiddenError(c, domain.ErrAdminRoleRequired.Error())
			}
			return next(c)
		}
	}
}
