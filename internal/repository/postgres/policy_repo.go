package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const policyColumns = `id, workspace_id, name, phone_number, email, address, policy_number,
	start_date, end_date, premium_amount, agent_rate, our_rate, tds_rate, gst_rate,
	vehicle_registration_number, vehicle_make, vehicle_model,
	agent_id, insurance_provider_id, vehicle_class_id,
	total_commission, commission, agent_commission, tds_amount, profit_after_tds, our_profit, gst_amount, gross_amount,
	status, created_by, updated_by, created_at, updated_at, deleted_at`

var policySortColumns = map[string]string{
	"createdAt":     "created_at",
	"startDate":     "start_date",
	"endDate":       "end_date",
	"premiumAmount": "premium_amount",
	"policyNumber":  "policy_number",
	"name":          "lower(name)",
}

// PolicyRepository implements domain.PolicyRepository using PostgreSQL
type PolicyRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository creates a new PolicyRepository
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

// policyArgs flattens the writable columns in policyColumns order (minus id and audit columns)
func policyArgs(p *domain.Policy) ([]any, error) {
	nums, err := numerics(
		p.PremiumAmount, p.AgentRate, p.OurRate, p.TDSRate, p.GSTRate,
		p.TotalCommission, p.Commission, p.AgentCommission, p.TDSAmount,
		p.ProfitAfterTDS, p.OurProfit, p.GSTAmount, p.GrossAmount,
	)
	if err != nil {
		return nil, err
	}

	var regNo, vehicleMake, vehicleModel pgtype.Text
	if p.VehicleInfo != nil {
		regNo = pgtype.Text{String: p.VehicleInfo.RegistrationNumber, Valid: true}
		vehicleMake = pgtype.Text{String: p.VehicleInfo.Make, Valid: p.VehicleInfo.Make != ""}
		vehicleModel = pgtype.Text{String: p.VehicleInfo.Model, Valid: p.VehicleInfo.Model != ""}
	}

	return []any{
		p.Name, p.PhoneNumber, p.Email, p.Address, p.PolicyNumber, // $3-$7
		p.StartDate, p.EndDate, // $8-$9
		nums[0], nums[1], nums[2], nums[3], nums[4], // $10-$14
		regNo, vehicleMake, vehicleModel, // $15-$17
		p.Agent.ID(), p.InsuranceProvider.ID(), p.VehicleType.ID(), // $18-$20
		nums[5], nums[6], nums[7], nums[8], nums[9], nums[10], nums[11], nums[12], // $21-$28
		string(p.Status), // $29
	}, nil
}

// Create inserts a policy with its already computed derived fields
func (r *PolicyRepository) Create(policy *domain.Policy) (*domain.Policy, error) {
	ctx := context.Background()
	fields, err := policyArgs(policy)
	if err != nil {
		return nil, err
	}
	args := append([]any{policy.WorkspaceID, uuidToPg(policy.CreatedBy)}, fields...)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO policies (
			workspace_id, created_by, updated_by,
			name, phone_number, email, address, policy_number,
			start_date, end_date, premium_amount, agent_rate, our_rate, tds_rate, gst_rate,
			vehicle_registration_number, vehicle_make, vehicle_model,
			agent_id, insurance_provider_id, vehicle_class_id,
			total_commission, commission, agent_commission, tds_amount, profit_after_tds, our_profit, gst_amount, gross_amount,
			status
		) VALUES (
			$1, $2, $2,
			$3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28,
			$29
		)
		RETURNING `+policyColumns,
		args...,
	)
	created, err := scanPolicy(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrPolicyNotFound, domain.ErrPolicyNumberExists)
	}
	return created, nil
}

func (r *PolicyRepository) GetByID(workspaceID int32, id int32) (*domain.Policy, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	policy, err := scanPolicy(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrPolicyNotFound, nil)
	}
	return policy, nil
}

// filterPolicies renders the WHERE conditions shared by List and ListAll
func filterPolicies(workspaceID int32, filter domain.PolicyFilter) *queryBuilder {
	q := &queryBuilder{}
	q.where("workspace_id = " + q.arg(workspaceID))
	q.where("deleted_at IS NULL")
	q.searchAny(filter.Search, "policy_number", "name", "phone_number", "email")
	if filter.Status != "" {
		q.where("status = " + q.arg(string(filter.Status)))
	}
	if filter.AgentID != nil {
		q.where("agent_id = " + q.arg(*filter.AgentID))
	}
	if filter.ProviderID != nil {
		q.where("insurance_provider_id = " + q.arg(*filter.ProviderID))
	}
	if filter.VehicleClassID != nil {
		q.where("vehicle_class_id = " + q.arg(*filter.VehicleClassID))
	}
	if filter.StartDateFrom != nil {
		q.where("start_date >= " + q.arg(*filter.StartDateFrom))
	}
	if filter.StartDateTo != nil {
		q.where("start_date <= " + q.arg(*filter.StartDateTo))
	}
	return q
}

// List returns one page of policies and the total match count
func (r *PolicyRepository) List(workspaceID int32, filter domain.PolicyFilter) ([]*domain.Policy, int64, error) {
	ctx := context.Background()
	q := filterPolicies(workspaceID, filter)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM policies"+q.whereClause(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count policies: %w", err)
	}

	query := "SELECT " + policyColumns + " FROM policies" + q.whereClause() +
		orderBy(policySortColumns, filter.SortBy, filter.SortOrder) + q.pagination(filter.ListParams)
	policies, err := r.queryPolicies(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	return policies, total, nil
}

// ListAll returns every matching policy ordered by start date, for reports and aggregates
func (r *PolicyRepository) ListAll(workspaceID int32, filter domain.PolicyFilter) ([]*domain.Policy, error) {
	ctx := context.Background()
	q := filterPolicies(workspaceID, filter)
	query := "SELECT " + policyColumns + " FROM policies" + q.whereClause() + " ORDER BY start_date ASC, id ASC"
	return r.queryPolicies(ctx, query, q.args...)
}

// ListEndingBetween returns policies whose end date lies in [from, to], soonest first
func (r *PolicyRepository) ListEndingBetween(workspaceID int32, from, to time.Time) ([]*domain.Policy, error) {
	ctx := context.Background()
	return r.queryPolicies(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE workspace_id = $1 AND deleted_at IS NULL AND end_date >= $2 AND end_date <= $3
		ORDER BY end_date ASC, id ASC`,
		workspaceID, from, to,
	)
}

func (r *PolicyRepository) ExistsByPolicyNumber(workspaceID int32, policyNumber string, excludeID int32) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM policies
			WHERE workspace_id = $1 AND policy_number = $2 AND id <> $3 AND deleted_at IS NULL
		)`,
		workspaceID, policyNumber, excludeID,
	).Scan(&exists)
	return exists, err
}

// Update writes inputs and derived fields together in one statement
func (r *PolicyRepository) Update(policy *domain.Policy) (*domain.Policy, error) {
	ctx := context.Background()
	fields, err := policyArgs(policy)
	if err != nil {
		return nil, err
	}
	args := append([]any{policy.WorkspaceID, policy.ID}, fields...)
	args = append(args, uuidToPg(policy.UpdatedBy))

	row := r.pool.QueryRow(ctx, `
		UPDATE policies SET
			name = $3, phone_number = $4, email = $5, address = $6, policy_number = $7,
			start_date = $8, end_date = $9,
			premium_amount = $10, agent_rate = $11, our_rate = $12, tds_rate = $13, gst_rate = $14,
			vehicle_registration_number = $15, vehicle_make = $16, vehicle_model = $17,
			agent_id = $18, insurance_provider_id = $19, vehicle_class_id = $20,
			total_commission = $21, commission = $22, agent_commission = $23, tds_amount = $24,
			profit_after_tds = $25, our_profit = $26, gst_amount = $27, gross_amount = $28,
			status = $29, updated_by = $30, updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+policyColumns,
		args...,
	)
	updated, err := scanPolicy(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrPolicyNotFound, domain.ErrPolicyNumberExists)
	}
	return updated, nil
}

func (r *PolicyRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE policies SET deleted_at = now(), updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}

// ListForStatusRefresh pages through live policies of all workspaces in id order
func (r *PolicyRepository) ListForStatusRefresh(afterID int32, limit int32) ([]*domain.Policy, error) {
	ctx := context.Background()
	return r.queryPolicies(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE deleted_at IS NULL AND id > $1
		ORDER BY id ASC
		LIMIT $2`,
		afterID, limit,
	)
}

// UpdateStatuses writes cached status corrections in a single batch
func (r *PolicyRepository) UpdateStatuses(updates []domain.PolicyStatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	ctx := context.Background()

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
			UPDATE policies SET status = $1
			WHERE workspace_id = $2 AND id = $3 AND deleted_at IS NULL`,
			string(u.Status), u.WorkspaceID, u.ID,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range updates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update policy status: %w", err)
		}
	}
	return nil
}

func (r *PolicyRepository) queryPolicies(ctx context.Context, query string, args ...any) ([]*domain.Policy, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := []*domain.Policy{}
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}

func scanPolicy(row rowScanner) (*domain.Policy, error) {
	var (
		p                                             domain.Policy
		premium, agentRate, ourRate, tdsRate, gstRate pgtype.Numeric
		regNo, vehicleMake, vehicleModel              pgtype.Text
		agentID, providerID, vehicleClassID           int32
		totalCommission, commission, agentCommission  pgtype.Numeric
		tdsAmount, profitAfterTDS, ourProfit          pgtype.Numeric
		gstAmount, grossAmount                        pgtype.Numeric
		status                                        string
		createdBy, updatedBy                          pgtype.UUID
		deletedAt                                     pgtype.Timestamptz
	)
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.PhoneNumber, &p.Email, &p.Address, &p.PolicyNumber,
		&p.StartDate, &p.EndDate, &premium, &agentRate, &ourRate, &tdsRate, &gstRate,
		&regNo, &vehicleMake, &vehicleModel,
		&agentID, &providerID, &vehicleClassID,
		&totalCommission, &commission, &agentCommission, &tdsAmount, &profitAfterTDS, &ourProfit, &gstAmount, &grossAmount,
		&status, &createdBy, &updatedBy, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	p.PremiumAmount = pgNumericToDecimal(premium)
	p.RateSet = domain.RateSet{
		AgentRate: pgNumericToDecimal(agentRate),
		OurRate:   pgNumericToDecimal(ourRate),
		TDSRate:   pgNumericToDecimal(tdsRate),
		GSTRate:   pgNumericToDecimal(gstRate),
	}
	p.DerivedFields = domain.DerivedFields{
		TotalCommission: pgNumericToDecimal(totalCommission),
		Commission:      pgNumericToDecimal(commission),
		AgentCommission: pgNumericToDecimal(agentCommission),
		TDSAmount:       pgNumericToDecimal(tdsAmount),
		ProfitAfterTDS:  pgNumericToDecimal(profitAfterTDS),
		OurProfit:       pgNumericToDecimal(ourProfit),
		GSTAmount:       pgNumericToDecimal(gstAmount),
		GrossAmount:     pgNumericToDecimal(grossAmount),
	}
	if regNo.Valid {
		p.VehicleInfo = &domain.VehicleInfo{
			RegistrationNumber: regNo.String,
			Make:               vehicleMake.String,
			Model:              vehicleModel.String,
		}
	}
	p.Agent = domain.Unresolved[domain.Agent](agentID)
	p.InsuranceProvider = domain.Unresolved[domain.Provider](providerID)
	p.VehicleType = domain.Unresolved[domain.VehicleClass](vehicleClassID)
	p.Status = domain.PolicyStatus(status)
	p.CreatedBy = pgToUUIDPtr(createdBy)
	p.UpdatedBy = pgToUUIDPtr(updatedBy)
	p.DeletedAt = pgTimestampPtr(deletedAt)
	return &p, nil
}
