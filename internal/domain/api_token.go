package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// APITokenPrefix marks brokerage API secrets so they can be told apart from session JWTs
	APITokenPrefix = "brk_"
	// MaxAPITokensPerWorkspace caps the live integrations of one brokerage
	MaxAPITokensPerWorkspace = 10

	apiSecretBytes        = 32
	apiSecretVisibleChars = 8
)

var (
	ErrAPITokenNotFound = errors.New("api token not found")
	ErrTooManyAPITokens = errors.New("maximum number of api tokens reached")
)

// APIToken lets an integration (a dealer system, an accounting sync) work on
// a brokerage's books without a browser session. Requests made with it run
// with the sub-user role.
type APIToken struct {
	ID          uuid.UUID
	CreatedBy   uuid.UUID
	WorkspaceID int32
	Description string
	// TokenHash is the hex SHA-256 of the full secret; the secret itself is never stored
	TokenHash string
	// TokenPrefix is the masked form shown in listings, e.g. "brk_abcd1234..."
	TokenPrefix string
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	RevokedAt   *time.Time
}

type apiTokenLabel struct {
	Description string `validate:"required,max=255"`
}

// IssueAPIToken mints a token for the actor's brokerage. The plaintext secret
// is returned alongside the token and must be handed to the caller exactly once.
func IssueAPIToken(actor Principal, description string) (*APIToken, string, error) {
	label := apiTokenLabel{Description: strings.TrimSpace(description)}
	if err := ValidateStruct(&label).OrNil(); err != nil {
		return nil, "", err
	}

	raw := make([]byte, apiSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", err
	}
	body := base64.RawURLEncoding.EncodeToString(raw)
	secret := APITokenPrefix + body

	return &APIToken{
		CreatedBy:   actor.UserID,
		WorkspaceID: actor.WorkspaceID,
		Description: label.Description,
		TokenHash:   HashAPISecret(secret),
		TokenPrefix: APITokenPrefix + body[:apiSecretVisibleChars] + "...",
	}, secret, nil
}

// HashAPISecret is the lookup key a presented secret is stored and matched under
func HashAPISecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// IsAPISecret reports whether a bearer credential is an API token rather than a JWT
func IsAPISecret(credential string) bool {
	return strings.HasPrefix(credential, APITokenPrefix)
}

// Principal returns the identity requests made with this token act as
func (t *APIToken) Principal() Principal {
	return Principal{UserID: t.CreatedBy, WorkspaceID: t.WorkspaceID, Role: RoleSubUser}
}

// APITokenRepository defines the interface for API token persistence.
// GetByWorkspace and GetByHash only see tokens that have not been revoked.
type APITokenRepository interface {
	Create(ctx context.Context, token *APIToken) error
	GetByWorkspace(ctx context.Context, workspaceID int32) ([]*APIToken, error)
	GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*APIToken, error)
	GetByHash(ctx context.Context, hash string) (*APIToken, error)
	Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}
