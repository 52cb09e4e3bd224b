package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthService links external identities to users and workspaces
type AuthService struct {
	userRepo      domain.UserRepository
	workspaceRepo domain.WorkspaceRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, workspaceRepo domain.WorkspaceRepository) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
	}
}

// Onboarding tells how a sign-in reached its workspace
type Onboarding string

const (
	OnboardingReturning Onboarding = "returning"
	OnboardingInvited   Onboarding = "invited"
	OnboardingFounded   Onboarding = "founded"
)

// AuthResult is the signed-in user with the brokerage they work in
type AuthResult struct {
	User       *domain.User
	Workspace  *domain.Workspace
	Onboarding Onboarding
}

// IsNewUser reports whether this sign-in created or claimed the user
func (r *AuthResult) IsNewUser() bool {
	return r.Onboarding != OnboardingReturning
}

// AuthenticateUser handles the sign-in callback. A known subject returns its
// user; otherwise a pending invitation for the email is claimed; otherwise a
// new brokerage workspace is created with the caller as its admin.
func (s *AuthService) AuthenticateUser(auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err == nil {
		return s.result(user, OnboardingReturning)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to look up user")
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationErrors{{Field: "email", Message: "must be a valid email address"}}
	}

	pending, err := s.userRepo.GetPendingByEmail(email)
	switch {
	case err == nil:
		user, err = s.userRepo.LinkAuth0ID(pending.ID, auth0ID, pictureURL)
		if err != nil {
			log.Error().Err(err).Str("user_id", pending.ID.String()).Msg("Failed to claim invitation")
			return nil, err
		}
		log.Info().Str("user_id", user.ID.String()).Int32("workspace_id", user.WorkspaceID).Msg("Invitation claimed")
		return s.result(user, OnboardingInvited)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	return s.createBrokerage(auth0ID, email, name, pictureURL)
}

func (s *AuthService) result(user *domain.User, how Onboarding) (*AuthResult, error) {
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	workspace, err := s.workspaceRepo.GetByID(user.WorkspaceID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get workspace")
		return nil, err
	}
	return &AuthResult{User: user, Workspace: workspace, Onboarding: how}, nil
}

func (s *AuthService) createBrokerage(auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserEmailExists
	}

	displayName := strings.TrimSpace(derefString(name))
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	workspace, err := s.workspaceRepo.Create(&domain.Workspace{Name: displayName + "'s Brokerage"})
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create workspace")
		return nil, err
	}

	user := &domain.User{
		WorkspaceID: workspace.ID,
		Auth0ID:     &auth0ID,
		Email:       email,
		Name:        displayName,
		Username:    usernameFromEmail(email),
		Role:        domain.RoleAdmin,
		IsActive:    true,
		PictureURL:  pictureURL,
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspace.ID).Msg("Failed to create admin user")
		return nil, err
	}

	log.Info().Str("user_id", created.ID.String()).Int32("workspace_id", workspace.ID).Msg("Created new brokerage workspace")
	return &AuthResult{User: created, Workspace: workspace, Onboarding: OnboardingFounded}, nil
}

// CurrentSession returns the signed-in user and brokerage without onboarding anyone
func (s *AuthService) CurrentSession(auth0ID string) (*AuthResult, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return nil, err
	}
	return s.result(user, OnboardingReturning)
}

// GetPrincipal resolves the caller behind a token subject. Deactivated users are refused.
func (s *AuthService) GetPrincipal(auth0ID string) (domain.Principal, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return domain.Principal{}, err
	}
	if !user.IsActive {
		return domain.Principal{}, domain.ErrUserInactive
	}
	return domain.Principal{UserID: user.ID, WorkspaceID: user.WorkspaceID, Role: user.Role}, nil
}

// GetWorkspaceByAuth0ID returns the workspace id of an active user, for websocket sign-in
func (s *AuthService) GetWorkspaceByAuth0ID(auth0ID string) (int32, error) {
	principal, err := s.GetPrincipal(auth0ID)
	if err != nil {
		return 0, err
	}
	return principal.WorkspaceID, nil
}

var usernameDisallowed = regexp.MustCompile(`[^a-z0-9._-]+`)

// usernameFromEmail derives a username from the local part of an email
func usernameFromEmail(email string) string {
	local := strings.SplitN(strings.ToLower(email), "@", 2)[0]
	username := usernameDisallowed.ReplaceAllString(local, "")
	if len(username) < 3 {
		username = "admin"
	}
	if len(username) > 50 {
		username = username[:50]
	}
	return username
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
