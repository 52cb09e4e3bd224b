package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, workspace_id, auth0_id, email, name, phone_number, username, role, is_active,
	picture_url, created_at, updated_at, deleted_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID within a workspace
func (r *UserRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, pgtype.UUID{Bytes: id, Valid: true},
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrUserNotFound, nil)
	}
	return user, nil
}

// GetByAuth0ID retrieves a user by their Auth0 subject
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE auth0_id = $1 AND deleted_at IS NULL`,
		auth0ID,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrUserNotFound, nil)
	}
	return user, nil
}

// GetPendingByEmail finds an invitation that has not been claimed yet
func (r *UserRepository) GetPendingByEmail(email string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE lower(email) = $1 AND auth0_id IS NULL AND deleted_at IS NULL`,
		strings.ToLower(email),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrUserNotFound, nil)
	}
	return user, nil
}

// ListByWorkspace returns all users of a workspace, admins first
func (r *UserRepository) ListByWorkspace(workspaceID int32) ([]*domain.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE workspace_id = $1 AND deleted_at IS NULL
		ORDER BY role ASC, lower(name) ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) ExistsByEmail(email string, excludeID uuid.UUID) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1 AND id <> $2 AND deleted_at IS NULL)`,
		strings.ToLower(email), pgtype.UUID{Bytes: excludeID, Valid: true},
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByUsername(workspaceID int32, username string, excludeID uuid.UUID) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE workspace_id = $1 AND lower(username) = $2 AND id <> $3 AND deleted_at IS NULL
		)`,
		workspaceID, strings.ToLower(username), pgtype.UUID{Bytes: excludeID, Valid: true},
	).Scan(&exists)
	return exists, err
}

// Create inserts a user; a nil Auth0ID stores a pending invitation
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (workspace_id, auth0_id, email, name, phone_number, username, role, is_active, picture_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		user.WorkspaceID, textToPg(user.Auth0ID), user.Email, user.Name, user.PhoneNumber,
		user.Username, string(user.Role), user.IsActive, textToPg(user.PictureURL),
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, translateUserErr(err)
	}
	return created, nil
}

// Update overwrites profile, role and active flag
func (r *UserRepository) Update(user *domain.User) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $3, phone_number = $4, username = $5, role = $6, is_active = $7, updated_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+userColumns,
		user.WorkspaceID, pgtype.UUID{Bytes: user.ID, Valid: true},
		user.Name, user.PhoneNumber, user.Username, string(user.Role), user.IsActive,
	)
	updated, err := scanUser(row)
	if err != nil {
		return nil, translateUserErr(err)
	}
	return updated, nil
}

// LinkAuth0ID attaches an identity to an invited user
func (r *UserRepository) LinkAuth0ID(id uuid.UUID, auth0ID string, pictureURL *string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET auth0_id = $2, picture_url = COALESCE($3, picture_url), updated_at = now()
		WHERE id = $1 AND auth0_id IS NULL AND deleted_at IS NULL
		RETURNING `+userColumns,
		pgtype.UUID{Bytes: id, Valid: true}, auth0ID, textToPg(pictureURL),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrUserNotFound, nil)
	}
	return user, nil
}

// translateUserErr tells the two user unique indexes apart
func translateUserErr(err error) error {
	if isPgUniqueViolation(err) {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_unique" {
			return domain.ErrUsernameExists
		}
		return domain.ErrUserEmailExists
	}
	return translateErr(err, domain.ErrUserNotFound, nil)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                   domain.User
		id                  pgtype.UUID
		auth0ID, pictureURL pgtype.Text
		role                string
		deletedAt           pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &u.WorkspaceID, &auth0ID, &u.Email, &u.Name, &u.PhoneNumber, &u.Username, &role, &u.IsActive,
		&pictureURL, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ID = uuid.UUID(id.Bytes)
	u.Auth0ID = pgTextPtr(auth0ID)
	u.PictureURL = pgTextPtr(pictureURL)
	u.Role = domain.UserRole(role)
	u.DeletedAt = pgTimestampPtr(deletedAt)
	return &u, nil
}
