package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const providerColumns = `id, workspace_id, name, agent_rate, our_rate, tds, gst, is_active,
	created_by, updated_by, created_at, updated_at, deleted_at`

var providerSortColumns = map[string]string{
	"name":      "lower(name)",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ProviderRepository implements domain.ProviderRepository using PostgreSQL
type ProviderRepository struct {
	pool *pgxpool.Pool
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

// Create inserts a provider and returns the stored row
func (r *ProviderRepository) Create(provider *domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	rates, err := numerics(provider.AgentRate, provider.OurRate, provider.TDS, provider.GST)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO insurance_providers (workspace_id, name, agent_rate, our_rate, tds, gst, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+providerColumns,
		provider.WorkspaceID, provider.Name, rates[0], rates[1], rates[2], rates[3], provider.IsActive, uuidToPg(provider.CreatedBy),
	)
	created, err := scanProvider(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrProviderNotFound, domain.ErrProviderNameExists)
	}
	return created, nil
}

// GetByID retrieves a non-deleted provider within a workspace
func (r *ProviderRepository) GetByID(workspaceID int32, id int32) (*domain.Provider, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+providerColumns+` FROM insurance_providers
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	provider, err := scanProvider(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrProviderNotFound, nil)
	}
	return provider, nil
}

// GetByIDs retrieves providers by id, including soft-deleted ones, for resolving references
func (r *ProviderRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.Provider, error) {
	result := make(map[int32]*domain.Provider, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerColumns+` FROM insurance_providers
		WHERE workspace_id = $1 AND id = ANY($2)`,
		workspaceID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		result[provider.ID] = provider
	}
	return result, rows.Err()
}

// List returns one page of providers matching params and the total match count
func (r *ProviderRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.Provider, int64, error) {
	ctx := context.Background()

	q := &queryBuilder{}
	q.where("workspace_id = " + q.arg(workspaceID))
	q.where("deleted_at IS NULL")
	q.searchAny(params.Search, "name")
	if params.IsActive != nil {
		q.where("is_active = " + q.arg(*params.IsActive))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM insurance_providers"+q.whereClause(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %w", err)
	}

	query := "SELECT " + providerColumns + " FROM insurance_providers" + q.whereClause() +
		orderBy(providerSortColumns, params.SortBy, params.SortOrder) + q.pagination(params)
	rows, err := r.pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	providers := []*domain.Provider{}
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, 0, err
		}
		providers = append(providers, provider)
	}
	return providers, total, rows.Err()
}

// ExistsByName checks for another non-deleted provider with the same name, ignoring case
func (r *ProviderRepository) ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM insurance_providers
			WHERE workspace_id = $1 AND lower(name) = $2 AND id <> $3 AND deleted_at IS NULL
		)`,
		workspaceID, strings.ToLower(name), excludeID,
	).Scan(&exists)
	return exists, err
}

// Update overwrites the editable columns of a provider
func (r *ProviderRepository) Update(provider *domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	rates, err := numerics(provider.AgentRate, provider.OurRate, provider.TDS, provider.GST)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE insurance_providers
		SET name = $3, agent_rate = $4, our_rate = $5, tds = $6, gst = $7, is_active = $8,
			updated_by = $9, updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+providerColumns,
		provider.WorkspaceID, provider.ID, provider.Name, rates[0], rates[1], rates[2], rates[3], provider.IsActive, uuidToPg(provider.UpdatedBy),
	)
	updated, err := scanProvider(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrProviderNotFound, domain.ErrProviderNameExists)
	}
	return updated, nil
}

// SoftDelete marks a provider as deleted (sets deleted_at timestamp)
func (r *ProviderRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE insurance_providers SET deleted_at = now(), updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func scanProvider(row rowScanner) (*domain.Provider, error) {
	var (
		p                            domain.Provider
		agentRate, ourRate, tds, gst pgtype.Numeric
		createdBy, updatedBy         pgtype.UUID
		deletedAt                    pgtype.Timestamptz
	)
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &agentRate, &ourRate, &tds, &gst, &p.IsActive,
		&createdBy, &updatedBy, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.AgentRate = pgNumericToDecimal(agentRate)
	p.OurRate = pgNumericToDecimal(ourRate)
	p.TDS = pgNumericToDecimal(tds)
	p.GST = pgNumericToDecimal(gst)
	p.CreatedBy = pgToUUIDPtr(createdBy)
	p.UpdatedBy = pgToUUIDPtr(updatedBy)
	p.DeletedAt = pgTimestampPtr(deletedAt)
	return &p, nil
}
