package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const agentColumns = `id, workspace_id, name, phone_number, email, address, city, state, is_active,
	created_by, updated_by, created_at, updated_at, deleted_at`

var agentSortColumns = map[string]string{
	"name":      "lower(name)",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// AgentRepository implements domain.AgentRepository using PostgreSQL
type AgentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository
func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

func (r *AgentRepository) Create(agent *domain.Agent) (*domain.Agent, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO agents (workspace_id, name, phone_number, email, address, city, state, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+agentColumns,
		agent.WorkspaceID, agent.Name, agent.PhoneNumber, agent.Email,
		agent.Location.Address, agent.Location.City, agent.Location.State, agent.IsActive, uuidToPg(agent.CreatedBy),
	)
	created, err := scanAgent(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrAgentNotFound, domain.ErrAgentPhoneExists)
	}
	return created, nil
}

func (r *AgentRepository) GetByID(workspaceID int32, id int32) (*domain.Agent, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+agentColumns+` FROM agents
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	agent, err := scanAgent(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrAgentNotFound, nil)
	}
	return agent, nil
}

// GetByIDs includes soft-deleted agents so historical policies keep their agent
func (r *AgentRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.Agent, error) {
	result := make(map[int32]*domain.Agent, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+agentColumns+` FROM agents
		WHERE workspace_id = $1 AND id = ANY($2)`,
		workspaceID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		result[agent.ID] = agent
	}
	return result, rows.Err()
}

// List searches name, phone, email, city and state
func (r *AgentRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.Agent, int64, error) {
	ctx := context.Background()

	q := &queryBuilder{}
	q.where("workspace_id = " + q.arg(workspaceID))
	q.where("deleted_at IS NULL")
	q.searchAny(params.Search, "name", "phone_number", "email", "city", "state")
	if params.IsActive != nil {
		q.where("is_active = " + q.arg(*params.IsActive))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM agents"+q.whereClause(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count agents: %w", err)
	}

	query := "SELECT " + agentColumns + " FROM agents" + q.whereClause() +
		orderBy(agentSortColumns, params.SortBy, params.SortOrder) + q.pagination(params)
	rows, err := r.pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	agents := []*domain.Agent{}
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, 0, err
		}
		agents = append(agents, agent)
	}
	return agents, total, rows.Err()
}

func (r *AgentRepository) ExistsByPhone(workspaceID int32, phone string, excludeID int32) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM agents
			WHERE workspace_id = $1 AND phone_number = $2 AND id <> $3 AND deleted_at IS NULL
		)`,
		workspaceID, phone, excludeID,
	).Scan(&exists)
	return exists, err
}

// CountActive counts non-deleted active agents
func (r *AgentRepository) CountActive(workspaceID int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM agents
		WHERE workspace_id = $1 AND deleted_at IS NULL AND is_active`,
		workspaceID,
	).Scan(&count)
	return count, err
}

func (r *AgentRepository) Update(agent *domain.Agent) (*domain.Agent, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE agents
		SET name = $3, phone_number = $4, email = $5, address = $6, city = $7, state = $8, is_active = $9,
			updated_by = $10, updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+agentColumns,
		agent.WorkspaceID, agent.ID, agent.Name, agent.PhoneNumber, agent.Email,
		agent.Location.Address, agent.Location.City, agent.Location.State, agent.IsActive, uuidToPg(agent.UpdatedBy),
	)
	updated, err := scanAgent(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrAgentNotFound, domain.ErrAgentPhoneExists)
	}
	return updated, nil
}

func (r *AgentRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE agents SET deleted_at = now(), updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var (
		a                    domain.Agent
		createdBy, updatedBy pgtype.UUID
		deletedAt            pgtype.Timestamptz
	)
	err := row.Scan(
		&a.ID, &a.WorkspaceID, &a.Name, &a.PhoneNumber, &a.Email,
		&a.Location.Address, &a.Location.City, &a.Location.State, &a.IsActive,
		&createdBy, &updatedBy, &a.CreatedAt, &a.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CreatedBy = pgToUUIDPtr(createdBy)
	a.UpdatedBy = pgToUUIDPtr(updatedBy)
	a.DeletedAt = pgTimestampPtr(deletedAt)
	return &a, nil
}
