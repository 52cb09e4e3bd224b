package service

import (
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UserService manages the members of a brokerage workspace
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// InviteUserInput contains input for inviting a user
type InviteUserInput struct {
	Email       string
	Name        string
	PhoneNumber string
	Username    string
	Role        domain.UserRole
}

// UpdateUserInput holds the fields an admin may change; nil leaves a field untouched
type UpdateUserInput struct {
	Name        *string
	PhoneNumber *string
	Username    *string
	Role        *domain.UserRole
	IsActive    *bool
}

// UpdateProfileInput holds the fields users may change on themselves
type UpdateProfileInput struct {
	Name        *string
	PhoneNumber *string
}

// InviteUser creates a pending user that is linked on their first sign-in
func (s *UserService) InviteUser(actor domain.Principal, input InviteUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminRoleRequired
	}

	user := &domain.User{
		WorkspaceID: actor.WorkspaceID,
		Email:       input.Email,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Username:    input.Username,
		Role:        input.Role,
		IsActive:    true,
	}
	if user.Role == "" {
		user.Role = domain.RoleSubUser
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUnique(user); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", actor.WorkspaceID).Msg("Failed to invite user")
		return nil, err
	}

	log.Info().
		Int32("workspace_id", actor.WorkspaceID).
		Str("user_id", created.ID.String()).
		Str("invited_by", actor.UserID.String()).
		Msg("User invited")
	return created, nil
}

// ListUsers returns every member of the workspace, pending invitations included
func (s *UserService) ListUsers(actor domain.Principal) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminRoleRequired
	}
	return s.userRepo.ListByWorkspace(actor.WorkspaceID)
}

// GetUser retrieves a member of the caller's workspace
func (s *UserService) GetUser(workspaceID int32, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(workspaceID, id)
}

// UpdateUser applies an admin's changes. Admins cannot demote or deactivate themselves.
func (s *UserService) UpdateUser(actor domain.Principal, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminRoleRequired
	}

	user, err := s.userRepo.GetByID(actor.WorkspaceID, id)
	if err != nil {
		return nil, err
	}

	if id == actor.UserID {
		if input.Role != nil && *input.Role != domain.RoleAdmin {
			return nil, domain.ErrCannotModifySelf
		}
		if input.IsActive != nil && !*input.IsActive {
			return nil, domain.ErrCannotModifySelf
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(user)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", actor.WorkspaceID).Str("user_id", id.String()).Msg("Failed to update user")
		return nil, err
	}

	log.Info().Int32("workspace_id", actor.WorkspaceID).Str("user_id", id.String()).Msg("User updated")
	return updated, nil
}

// DeactivateUser marks a user inactive; their sessions and tokens stop resolving
func (s *UserService) DeactivateUser(actor domain.Principal, id uuid.UUID) error {
	inactive := false
	_, err := s.UpdateUser(actor, id, UpdateUserInput{IsActive: &inactive})
	return err
}

// UpdateProfile lets any user change their own name and phone number
func (s *UserService) UpdateProfile(actor domain.Principal, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(actor.WorkspaceID, actor.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	return s.userRepo.Update(user)
}

// checkUnique enforces globally unique emails and per-workspace unique usernames
func (s *UserService) checkUnique(user *domain.User) error {
	emailTaken, err := s.userRepo.ExistsByEmail(user.Email, user.ID)
	if err != nil {
		return err
	}
	if emailTaken {
		return domain.ErrUserEmailExists
	}

	usernameTaken, err := s.userRepo.ExistsByUsername(user.WorkspaceID, user.Username, user.ID)
	if err != nil {
		return err
	}
	if usernameTaken {
		return domain.ErrUsernameExists
	}
	return nil
}
