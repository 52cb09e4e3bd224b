package postgres

import (
	"context"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	ctx := context.Background()
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM workspaces WHERE id = $1`,
		id,
	).Scan(&ws.ID, &ws.Name, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, translateErr(err, domain.ErrWorkspaceNotFound, nil)
	}
	return &ws, nil
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	ctx := context.Background()
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, `
		INSERT INTO workspaces (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at`,
		workspace.Name,
	).Scan(&ws.ID, &ws.Name, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// Update renames a workspace
func (r *WorkspaceRepository) Update(workspace *domain.Workspace) (*domain.Workspace, error) {
	ctx := context.Background()
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, `
		UPDATE workspaces SET name = $2, updated_at = now() WHERE id = $1
		RETURNING id, name, created_at, updated_at`,
		workspace.ID, workspace.Name,
	).Scan(&ws.ID, &ws.Name, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, translateErr(err, domain.ErrWorkspaceNotFound, nil)
	}
	return &ws, nil
}
