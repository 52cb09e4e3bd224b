package service

import (
	"context"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const lastUsedTimeout = 5 * time.Second

// APITokenService manages the integration tokens of a brokerage
type APITokenService struct {
	repo domain.APITokenRepository
}

// NewAPITokenService creates a new APITokenService
func NewAPITokenService(repo domain.APITokenRepository) *APITokenService {
	return &APITokenService{repo: repo}
}

// Issue creates a token for the actor's brokerage and returns it with its plaintext secret
func (s *APITokenService) Issue(ctx context.Context, actor domain.Principal, description string) (*domain.APIToken, string, error) {
	if !actor.IsAdmin() {
		return nil, "", domain.ErrAdminRoleRequired
	}

	live, err := s.repo.GetByWorkspace(ctx, actor.WorkspaceID)
	if err != nil {
		return nil, "", err
	}
	if len(live) >= domain.MaxAPITokensPerWorkspace {
		return nil, "", domain.ErrTooManyAPITokens
	}

	token, secret, err := domain.IssueAPIToken(actor, description)
	if err != nil {
		return nil, "", err
	}
	if err := s.repo.Create(ctx, token); err != nil {
		log.Error().Err(err).Int32("workspace_id", actor.WorkspaceID).Msg("Failed to store API token")
		return nil, "", err
	}

	log.Info().
		Int32("workspace_id", actor.WorkspaceID).
		Str("token_id", token.ID.String()).
		Str("issued_by", actor.UserID.String()).
		Int("live_tokens", len(live)+1).
		Msg("API token issued")
	return token, secret, nil
}

// List returns the live tokens of a workspace
func (s *APITokenService) List(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	return s.repo.GetByWorkspace(ctx, workspaceID)
}

// Revoke disables a token immediately. Tokens of other workspaces report ErrAPITokenNotFound.
func (s *APITokenService) Revoke(ctx context.Context, actor domain.Principal, tokenID uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrAdminRoleRequired
	}

	token, err := s.repo.GetByID(ctx, actor.WorkspaceID, tokenID)
	if err != nil {
		return err
	}
	if err := s.repo.Revoke(ctx, actor.WorkspaceID, tokenID); err != nil {
		return err
	}

	log.Info().
		Int32("workspace_id", actor.WorkspaceID).
		Str("token_id", tokenID.String()).
		Str("description", token.Description).
		Str("revoked_by", actor.UserID.String()).
		Msg("API token revoked")
	return nil
}

// Resolve maps a presented secret to its live token and records the use in
// the background. Unknown, malformed and revoked secrets all report ErrAPITokenNotFound.
func (s *APITokenService) Resolve(ctx context.Context, secret string) (*domain.APIToken, error) {
	if !domain.IsAPISecret(secret) {
		return nil, domain.ErrAPITokenNotFound
	}

	token, err := s.repo.GetByHash(ctx, domain.HashAPISecret(secret))
	if err != nil {
		return nil, err
	}

	go s.markUsed(token.ID)
	return token, nil
}

func (s *APITokenService) markUsed(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), lastUsedTimeout)
	defer cancel()
	if err := s.repo.UpdateLastUsed(ctx, id); err != nil {
		log.Warn().Err(err).Str("token_id", id.String()).Msg("Failed to record API token use")
	}
}
