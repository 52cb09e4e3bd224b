package service

import (
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateUser_NewBrokerage(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	svc := NewAuthService(userRepo, workspaceRepo)

	name := "Priya Shah"
	result, err := svc.AuthenticateUser("auth0|12345", " Priya@Example.com ", &name, nil)
	require.NoError(t, err)

	assert.Equal(t, OnboardingFounded, result.Onboarding)
	assert.Equal(t, "priya@example.com", result.User.Email)
	assert.Equal(t, "priya", result.User.Username)
	assert.Equal(t, domain.RoleAdmin, result.User.Role, "the founder of a brokerage is its admin")
	assert.Equal(t, "Priya Shah's Brokerage", result.Workspace.Name)
	assert.Equal(t, result.Workspace.ID, result.User.WorkspaceID)
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 4, Name: "Shah Brokers"})
	auth0ID := "auth0|existing"
	userRepo.AddUser(&domain.User{WorkspaceID: 4, Auth0ID: &auth0ID, Email: "a@example.com", Role: domain.RoleSubUser, IsActive: true})
	svc := NewAuthService(userRepo, workspaceRepo)

	result, err := svc.AuthenticateUser(auth0ID, "a@example.com", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.IsNewUser())
	assert.Equal(t, int32(4), result.Workspace.ID)
	assert.Len(t, workspaceRepo.Workspaces, 1, "no new workspace for a known user")
}

func TestAuthenticateUser_ClaimsInvitation(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 4, Name: "Shah Brokers"})
	invited := &domain.User{WorkspaceID: 4, Email: "clerk@example.com", Name: "Clerk", Username: "clerk", Role: domain.RoleSubUser, IsActive: true}
	userRepo.AddUser(invited)
	svc := NewAuthService(userRepo, workspaceRepo)

	picture := "https://example.com/p.png"
	result, err := svc.AuthenticateUser("auth0|clerk", "CLERK@example.com", nil, &picture)
	require.NoError(t, err)

	assert.Equal(t, OnboardingInvited, result.Onboarding)
	assert.True(t, result.IsNewUser())
	assert.Equal(t, invited.ID, result.User.ID)
	assert.Equal(t, domain.RoleSubUser, result.User.Role)
	assert.Equal(t, int32(4), result.Workspace.ID)
	require.NotNil(t, result.User.Auth0ID)
	assert.Equal(t, "auth0|clerk", *result.User.Auth0ID)
}

func TestAuthenticateUser_InactiveUserRefused(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 1})
	auth0ID := "auth0|gone"
	userRepo.AddUser(&domain.User{WorkspaceID: 1, Auth0ID: &auth0ID, Email: "gone@example.com", IsActive: false})
	svc := NewAuthService(userRepo, workspaceRepo)

	_, err := svc.AuthenticateUser(auth0ID, "gone@example.com", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.GetPrincipal(auth0ID)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthenticateUser_InvalidEmail(t *testing.T) {
	svc := NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockWorkspaceRepository())

	_, err := svc.AuthenticateUser("auth0|x", "not-an-email", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetPrincipal(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	auth0ID := "auth0|admin"
	id := uuid.New()
	userRepo.AddUser(&domain.User{ID: id, WorkspaceID: 3, Auth0ID: &auth0ID, Role: domain.RoleAdmin, IsActive: true})
	svc := NewAuthService(userRepo, testutil.NewMockWorkspaceRepository())

	principal, err := svc.GetPrincipal(auth0ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: id, WorkspaceID: 3, Role: domain.RoleAdmin}, principal)
	assert.True(t, principal.IsAdmin())

	workspaceID, err := svc.GetWorkspaceByAuth0ID(auth0ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), workspaceID)

	_, err = svc.GetPrincipal("auth0|unknown")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCurrentSession(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 6, Name: "Kumar Motor Cover"})
	active, gone := "auth0|active", "auth0|gone"
	userRepo.AddUser(&domain.User{WorkspaceID: 6, Auth0ID: &active, Email: "a@example.com", IsActive: true})
	userRepo.AddUser(&domain.User{WorkspaceID: 6, Auth0ID: &gone, Email: "g@example.com", IsActive: false})
	svc := NewAuthService(userRepo, workspaceRepo)

	session, err := svc.CurrentSession(active)
	require.NoError(t, err)
	assert.Equal(t, "Kumar Motor Cover", session.Workspace.Name)
	assert.False(t, session.IsNewUser())

	_, err = svc.CurrentSession(gone)
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.CurrentSession("auth0|unknown")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Len(t, workspaceRepo.Workspaces, 1, "looking up a session never founds a brokerage")
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "ravi.kumar", usernameFromEmail("Ravi.Kumar@example.com"))
	assert.Equal(t, "ravikumar", usernameFromEmail("ravi+kumar@example.com"))
	assert.Equal(t, "admin", usernameFromEmail("r@example.com"))
}
