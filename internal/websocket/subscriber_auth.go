package websocket

import (
	"context"
	"errors"

	"github.com/auth0/go-jwt-middleware/v2/validator"
)

var (
	// ErrTokenRejected covers bad signatures, expiry and tokens without a subject
	ErrTokenRejected = errors.New("session token rejected")
	// ErrNoMembership is returned when the subject is not an active member of any brokerage
	ErrNoMembership = errors.New("no active brokerage membership")
)

// ClaimsValidator checks a raw session JWT. The Auth0 validator shared with the
// HTTP middleware satisfies it.
type ClaimsValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// MembershipLookup maps an Auth0 subject to the workspace its user belongs to
type MembershipLookup interface {
	GetWorkspaceByAuth0ID(auth0ID string) (workspaceID int32, err error)
}

// SubscriberAuthenticator decides which workspace stream a websocket
// connection may join. Browsers cannot set headers on the upgrade request, so
// the session JWT arrives on the query string instead of the Authorization header.
type SubscriberAuthenticator struct {
	tokens  ClaimsValidator
	members MembershipLookup
}

func NewSubscriberAuthenticator(tokens ClaimsValidator, members MembershipLookup) *SubscriberAuthenticator {
	return &SubscriberAuthenticator{tokens: tokens, members: members}
}

// Authorize returns the workspace whose events the token holder may receive
func (a *SubscriberAuthenticator) Authorize(ctx context.Context, token string) (int32, error) {
	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		return 0, ErrTokenRejected
	}

	subject := subjectOf(claims)
	if subject == "" {
		return 0, ErrTokenRejected
	}

	workspaceID, err := a.members.GetWorkspaceByAuth0ID(subject)
	if err != nil {
		return 0, ErrNoMembership
	}
	return workspaceID, nil
}

func subjectOf(claims interface{}) string {
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	return validated.RegisteredClaims.Subject
}
