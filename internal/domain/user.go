package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleSubUser UserRole = "sub-user"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailExists   = errors.New("user with this email already exists")
	ErrUsernameExists    = errors.New("username already taken")
	ErrCannotModifySelf  = errors.New("admins cannot demote or deactivate themselves")
	ErrUserInactive      = errors.New("user is deactivated")
	ErrAdminRoleRequired = errors.New("admin role required")
)

// User is a member of a brokerage workspace. Auth0ID is nil until an invited user first signs in.
type User struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID int32      `json:"workspaceId"`
	Auth0ID     *string    `json:"-"`
	Email       string     `json:"email" validate:"required,max=255,emailaddr"`
	Name        string     `json:"name" validate:"required,max=255"`
	PhoneNumber string     `json:"phoneNumber,omitempty" validate:"omitempty,phone10"`
	Username    string     `json:"username" validate:"required,min=3,max=50"`
	Role        UserRole   `json:"role" validate:"required,oneof=admin sub-user"`
	IsActive    bool       `json:"isActive"`
	PictureURL  *string    `json:"pictureUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	u.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
	u.Username = strings.TrimSpace(u.Username)
}

func (u *User) Validate() error {
	return ValidateStruct(u).OrNil()
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPending reports whether the user was invited but has not signed in yet
func (u *User) IsPending() bool {
	return u.Auth0ID == nil
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID      uuid.UUID
	WorkspaceID int32
	Role        UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(workspaceID int32, id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	GetPendingByEmail(email string) (*User, error)
	ListByWorkspace(workspaceID int32) ([]*User, error)
	ExistsByEmail(email string, excludeID uuid.UUID) (bool, error)
	ExistsByUsername(workspaceID int32, username string, excludeID uuid.UUID) (bool, error)
	Create(user *User) (*User, error)
	Update(user *User) (*User, error)
	LinkAuth0ID(id uuid.UUID, auth0ID string, pictureURL *string) (*User, error)
}
