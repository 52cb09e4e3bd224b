package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberDirectory map[string]int32

func (m memberDirectory) GetWorkspaceByAuth0ID(auth0ID string) (int32, error) {
	if id, ok := m[auth0ID]; ok {
		return id, nil
	}
	return 0, errors.New("user not found")
}

// signedBy accepts only the token "good" and hands back fixed claims
type signedBy struct {
	claims interface{}
}

func (s signedBy) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if token != "good" {
		return nil, errors.New("signature invalid")
	}
	return s.claims, nil
}

func sessionFor(subject string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: subject}}
}

func TestSubscriberAuthenticator_Authorize(t *testing.T) {
	members := memberDirectory{"auth0|broker": 12}

	tests := []struct {
		name    string
		claims  interface{}
		token   string
		want    int32
		wantErr error
	}{
		{"active member", sessionFor("auth0|broker"), "good", 12, nil},
		{"bad signature", sessionFor("auth0|broker"), "forged", 0, ErrTokenRejected},
		{"unexpected claims type", "claims", "good", 0, ErrTokenRejected},
		{"empty subject", sessionFor(""), "good", 0, ErrTokenRejected},
		{"not a member", sessionFor("auth0|stranger"), "good", 0, ErrNoMembership},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewSubscriberAuthenticator(signedBy{claims: tt.claims}, members)

			got, err := a.Authorize(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
