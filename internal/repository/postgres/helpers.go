package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func isPgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation error code is 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// translateErr maps no-rows to notFound and unique violations to exists
func translateErr(err error, notFound, exists error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	if exists != nil && isPgUniqueViolation(err) {
		return exists
	}
	return err
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// numerics converts a list of decimals in order, failing on the first invalid one
func numerics(values ...decimal.Decimal) ([]pgtype.Numeric, error) {
	out := make([]pgtype.Numeric, len(values))
	for i, v := range values {
		num, err := decimalToPgNumeric(v)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric %s: %w", v.String(), err)
		}
		out[i] = num
	}
	return out, nil
}

func uuidToPg(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func pgToUUIDPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}

func pgTimestampPtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func pgTextPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func textToPg(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// likePattern wraps a search term for ILIKE, escaping its wildcards
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// queryBuilder collects WHERE conditions with numbered placeholders
type queryBuilder struct {
	conds []string
	args  []any
}

// arg registers a value and returns its placeholder
func (q *queryBuilder) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *queryBuilder) where(cond string) {
	q.conds = append(q.conds, cond)
}

// searchAny matches the term against any of the columns
func (q *queryBuilder) searchAny(term string, columns ...string) {
	if term == "" {
		return
	}
	placeholder := q.arg(likePattern(term))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE " + placeholder
	}
	q.where("(" + strings.Join(parts, " OR ") + ")")
}

func (q *queryBuilder) whereClause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// orderBy resolves a whitelisted sort key to a column, with id as tie breaker
func orderBy(columns map[string]string, sortBy string, order domain.SortOrder) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if order == domain.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// pagination renders LIMIT/OFFSET for normalized params
func (q *queryBuilder) pagination(params domain.ListParams) string {
	return " LIMIT " + q.arg(params.PageSize) + " OFFSET " + q.arg(params.Offset())
}
