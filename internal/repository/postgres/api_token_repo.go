package postgres

import (
	"context"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const apiTokenColumns = `id, created_by, workspace_id, description, token_hash, token_prefix, last_used_at, created_at, revoked_at`

// APITokenRepository implements domain.APITokenRepository using PostgreSQL
type APITokenRepository struct {
	pool *pgxpool.Pool
}

// NewAPITokenRepository creates a new APITokenRepository
func NewAPITokenRepository(pool *pgxpool.Pool) *APITokenRepository {
	return &APITokenRepository{pool: pool}
}

// Create creates a new API token and fills in its generated ID
func (r *APITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO api_tokens (created_by, workspace_id, description, token_hash, token_prefix)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+apiTokenColumns,
		pgtype.UUID{Bytes: token.CreatedBy, Valid: true}, token.WorkspaceID, token.Description, token.TokenHash, token.TokenPrefix,
	)
	created, err := scanAPIToken(row)
	if err != nil {
		return err
	}
	token.ID = created.ID
	token.CreatedAt = created.CreatedAt
	return nil
}

// GetByWorkspace retrieves all active API tokens for a workspace
func (r *APITokenRepository) GetByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apiTokenColumns+` FROM api_tokens
		WHERE workspace_id = $1 AND revoked_at IS NULL
		ORDER BY created_at DESC`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []*domain.APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// GetByID retrieves an active API token by ID within a workspace
func (r *APITokenRepository) GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*domain.APIToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apiTokenColumns+` FROM api_tokens
		WHERE workspace_id = $1 AND id = $2 AND revoked_at IS NULL`,
		workspaceID, pgtype.UUID{Bytes: id, Valid: true},
	)
	token, err := scanAPIToken(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrAPITokenNotFound, nil)
	}
	return token, nil
}

// GetByHash retrieves an active API token by its hash (for authentication)
func (r *APITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apiTokenColumns+` FROM api_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL`,
		hash,
	)
	token, err := scanAPIToken(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrAPITokenNotFound, nil)
	}
	return token, nil
}

// Revoke marks an API token as revoked
func (r *APITokenRepository) Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE api_tokens SET revoked_at = now()
		WHERE workspace_id = $1 AND id = $2 AND revoked_at IS NULL`,
		workspaceID, pgtype.UUID{Bytes: id, Valid: true},
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAPITokenNotFound
	}
	return nil
}

// UpdateLastUsed updates the last_used_at timestamp for a token
func (r *APITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_tokens SET last_used_at = now() WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true})
	return err
}

func scanAPIToken(row rowScanner) (*domain.APIToken, error) {
	var (
		t                   domain.APIToken
		id, createdBy       pgtype.UUID
		lastUsed, revokedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &createdBy, &t.WorkspaceID, &t.Description, &t.TokenHash, &t.TokenPrefix, &lastUsed, &t.CreatedAt, &revokedAt)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.CreatedBy = uuid.UUID(createdBy.Bytes)
	t.LastUsedAt = pgTimestampPtr(lastUsed)
	t.RevokedAt = pgTimestampPtr(revokedAt)
	return &t, nil
}
