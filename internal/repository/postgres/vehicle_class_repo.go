package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleClassColumns = `id, workspace_id, name, commission_rate, agent_rate, our_rate, is_active,
	created_by, updated_by, created_at, updated_at, deleted_at`

var vehicleClassSortColumns = map[string]string{
	"name":      "lower(name)",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// VehicleClassRepository implements domain.VehicleClassRepository using PostgreSQL
type VehicleClassRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleClassRepository creates a new VehicleClassRepository
func NewVehicleClassRepository(pool *pgxpool.Pool) *VehicleClassRepository {
	return &VehicleClassRepository{pool: pool}
}

func (r *VehicleClassRepository) Create(vc *domain.VehicleClass) (*domain.VehicleClass, error) {
	ctx := context.Background()
	rates, err := numerics(vc.CommissionRate, vc.AgentRate, vc.OurRate)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO vehicle_classes (workspace_id, name, commission_rate, agent_rate, our_rate, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+vehicleClassColumns,
		vc.WorkspaceID, vc.Name, rates[0], rates[1], rates[2], vc.IsActive, uuidToPg(vc.CreatedBy),
	)
	created, err := scanVehicleClass(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrVehicleClassNotFound, domain.ErrVehicleClassNameExists)
	}
	return created, nil
}

func (r *VehicleClassRepository) GetByID(workspaceID int32, id int32) (*domain.VehicleClass, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+vehicleClassColumns+` FROM vehicle_classes
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	vc, err := scanVehicleClass(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrVehicleClassNotFound, nil)
	}
	return vc, nil
}

// GetByIDs includes soft-deleted rows so old policies still resolve their vehicle class
func (r *VehicleClassRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.VehicleClass, error) {
	result := make(map[int32]*domain.VehicleClass, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+vehicleClassColumns+` FROM vehicle_classes
		WHERE workspace_id = $1 AND id = ANY($2)`,
		workspaceID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		vc, err := scanVehicleClass(rows)
		if err != nil {
			return nil, err
		}
		result[vc.ID] = vc
	}
	return result, rows.Err()
}

func (r *VehicleClassRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.VehicleClass, int64, error) {
	ctx := context.Background()

	q := &queryBuilder{}
	q.where("workspace_id = " + q.arg(workspaceID))
	q.where("deleted_at IS NULL")
	q.searchAny(params.Search, "name")
	if params.IsActive != nil {
		q.where("is_active = " + q.arg(*params.IsActive))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vehicle_classes"+q.whereClause(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicle classes: %w", err)
	}

	query := "SELECT " + vehicleClassColumns + " FROM vehicle_classes" + q.whereClause() +
		orderBy(vehicleClassSortColumns, params.SortBy, params.SortOrder) + q.pagination(params)
	rows, err := r.pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	classes := []*domain.VehicleClass{}
	for rows.Next() {
		vc, err := scanVehicleClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, vc)
	}
	return classes, total, rows.Err()
}

func (r *VehicleClassRepository) ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vehicle_classes
			WHERE workspace_id = $1 AND lower(name) = $2 AND id <> $3 AND deleted_at IS NULL
		)`,
		workspaceID, strings.ToLower(name), excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *VehicleClassRepository) Update(vc *domain.VehicleClass) (*domain.VehicleClass, error) {
	ctx := context.Background()
	rates, err := numerics(vc.CommissionRate, vc.AgentRate, vc.OurRate)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE vehicle_classes
		SET name = $3, commission_rate = $4, agent_rate = $5, our_rate = $6, is_active = $7,
			updated_by = $8, updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+vehicleClassColumns,
		vc.WorkspaceID, vc.ID, vc.Name, rates[0], rates[1], rates[2], vc.IsActive, uuidToPg(vc.UpdatedBy),
	)
	updated, err := scanVehicleClass(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrVehicleClassNotFound, domain.ErrVehicleClassNameExists)
	}
	return updated, nil
}

func (r *VehicleClassRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE vehicle_classes SET deleted_at = now(), updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleClassNotFound
	}
	return nil
}

func scanVehicleClass(row rowScanner) (*domain.VehicleClass, error) {
	var (
		vc                                 domain.VehicleClass
		commissionRate, agentRate, ourRate pgtype.Numeric
		createdBy, updatedBy               pgtype.UUID
		deletedAt                          pgtype.Timestamptz
	)
	err := row.Scan(
		&vc.ID, &vc.WorkspaceID, &vc.Name, &commissionRate, &agentRate, &ourRate, &vc.IsActive,
		&createdBy, &updatedBy, &vc.CreatedAt, &vc.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	vc.CommissionRate = pgNumericToDecimal(commissionRate)
	vc.AgentRate = pgNumericToDecimal(agentRate)
	vc.OurRate = pgNumericToDecimal(ourRate)
	vc.CreatedBy = pgToUUIDPtr(createdBy)
	vc.UpdatedBy = pgToUUIDPtr(updatedBy)
	vc.DeletedAt = pgTimestampPtr(deletedAt)
	return &vc, nil
}
