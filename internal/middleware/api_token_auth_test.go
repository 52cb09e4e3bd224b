package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// singleTokenResolver knows a single live secret
type singleTokenResolver struct {
	token *domain.APIToken
	err   error
}

func (m *singleTokenResolver) Resolve(ctx context.Context, token string) (*domain.APIToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	if token == "brk_valid" {
		return m.token, nil
	}
	return nil, domain.ErrAPITokenNotFound
}

func newTokenResolver() *singleTokenResolver {
	return &singleTokenResolver{token: &domain.APIToken{
		ID:          uuid.New(),
		CreatedBy:   adminPrincipal.UserID,
		WorkspaceID: 7,
	}}
}

func TestAPITokenAuth_Success(t *testing.T) {
	v := newTokenResolver()

	rec := serve(t, "Bearer brk_valid", func(c echo.Context) error {
		principal, found := GetPrincipal(c)
		assert.True(t, found)
		assert.Equal(t, int32(7), principal.WorkspaceID)
		assert.Equal(t, domain.RoleSubUser, principal.Role, "tokens never act as admin")
		assert.True(t, IsAPITokenAuth(c))
		assert.Equal(t, v.token.ID, GetAPITokenID(c))
		return ok(c)
	}, NewAPITokenAuthMiddleware(v).Authenticate())

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPITokenAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"no bearer scheme", "Token brk_valid", nil, http.StatusUnauthorized},
		{"not a brk token", "Bearer eyJhbGciOi", nil, http.StatusUnauthorized},
		{"unknown token", "Bearer brk_unknown", nil, http.StatusUnauthorized},
		{"lookup failure", "Bearer brk_valid", errors.New("database down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTokenResolver()
			v.err = tt.err
			rec := serve(t, tt.header, ok, NewAPITokenAuthMiddleware(v).Authenticate())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
