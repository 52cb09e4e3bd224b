package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Helper to set up a signed-in identity without a resolved user
func setupAuthContext(c echo.Context, auth0ID string, email, name, picture string) {
	customClaims := &middleware.CustomClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// Helper to set up the resolved caller of a request
func setupPrincipal(c echo.Context, principal domain.Principal) {
	ctx := context.WithValue(c.Request().Context(), middleware.PrincipalKey, principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

// adminOf returns an admin principal for the workspace
func adminOf(workspaceID int32) domain.Principal {
	return domain.Principal{UserID: uuid.New(), WorkspaceID: workspaceID, Role: domain.RoleAdmin}
}

// subUserOf returns a sub-user principal for the workspace
func subUserOf(workspaceID int32) domain.Principal {
	return domain.Principal{UserID: uuid.New(), WorkspaceID: workspaceID, Role: domain.RoleSubUser}
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	authService := service.NewAuthService(userRepo, workspaceRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|newuser123", "new@example.com", "New User", "https://example.com/pic.jpg")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.IsNewUser || response.Onboarding != "founded" {
		t.Errorf("Expected a founded brokerage, got isNewUser=%v onboarding=%q", response.IsNewUser, response.Onboarding)
	}
	if response.User.Email != "new@example.com" {
		t.Errorf("Expected email 'new@example.com', got %s", response.User.Email)
	}
	if response.User.Role != domain.RoleAdmin {
		t.Errorf("Expected founder of a brokerage to be admin, got %s", response.User.Role)
	}
	if response.Workspace == nil || response.Workspace.Name != "New User's Brokerage" {
		t.Errorf("Expected a new brokerage workspace, got %+v", response.Workspace)
	}
}

func TestCallback_ExistingUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	authService := service.NewAuthService(userRepo, workspaceRepo)
	handler := NewAuthHandler(authService)

	auth0ID := "auth0|existing123"
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 3, Name: "Sharma Insurance"})
	userRepo.AddUser(&domain.User{
		ID:          uuid.New(),
		WorkspaceID: 3,
		Auth0ID:     &auth0ID,
		Email:       "existing@example.com",
		Name:        "Existing User",
		Username:    "existing",
		Role:        domain.RoleSubUser,
		IsActive:    true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "existing@example.com", "Existing User", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}
	if response.Workspace.ID != 3 {
		t.Errorf("Expected workspace 3, got %d", response.Workspace.ID)
	}
}

func TestCallback_ClaimsInvitation(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	authService := service.NewAuthService(userRepo, workspaceRepo)
	handler := NewAuthHandler(authService)

	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 5, Name: "Sharma Insurance"})
	invitedID := uuid.New()
	userRepo.AddUser(&domain.User{
		ID:          invitedID,
		WorkspaceID: 5,
		Email:       "invited@example.com",
		Name:        "Invited",
		Username:    "invited",
		Role:        domain.RoleSubUser,
		IsActive:    true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|invited", "Invited@Example.com", "Invited", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Onboarding != "invited" {
		t.Errorf("Expected onboarding 'invited', got %q", response.Onboarding)
	}
	if response.User.ID != invitedID {
		t.Errorf("Expected invited user %s to be linked, got %s", invitedID, response.User.ID)
	}
	if response.Workspace.ID != 5 {
		t.Errorf("Expected to join workspace 5, got %d", response.Workspace.ID)
	}
}

func TestCallback_DeactivatedUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo, workspaceRepo))

	auth0ID := "auth0|gone"
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 1, Name: "Brokerage"})
	userRepo.AddUser(&domain.User{ID: uuid.New(), WorkspaceID: 1, Auth0ID: &auth0ID, Email: "gone@example.com", Name: "Gone", Username: "gone", Role: domain.RoleSubUser})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, auth0ID, "gone@example.com", "Gone", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestCallback_MissingAuth0ID(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockWorkspaceRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockWorkspaceRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|noemail", "", "No Email", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	problem := decodeProblem(t, rec)
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "email" {
		t.Errorf("Expected an email field error, got %+v", problem.Errors)
	}
}

func TestMe_Success(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo, workspaceRepo))

	auth0ID := "auth0|me123"
	userID := uuid.New()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 2, Name: "Me Brokerage"})
	userRepo.AddUser(&domain.User{
		ID:          userID,
		WorkspaceID: 2,
		Auth0ID:     &auth0ID,
		Email:       "me@example.com",
		Name:        "Me User",
		Username:    "me",
		Role:        domain.RoleAdmin,
		IsActive:    true,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "me@example.com", "Me User", "")
	setupPrincipal(c, domain.Principal{UserID: userID, WorkspaceID: 2, Role: domain.RoleAdmin})

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.User.Email != "me@example.com" {
		t.Errorf("Expected email 'me@example.com', got %s", response.User.Email)
	}
	if response.Workspace.Name != "Me Brokerage" {
		t.Errorf("Expected workspace 'Me Brokerage', got %s", response.Workspace.Name)
	}
}

func TestMe_DeactivatedUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo, workspaceRepo))

	auth0ID := "auth0|left"
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: 2, Name: "Me Brokerage"})
	userRepo.AddUser(&domain.User{WorkspaceID: 2, Auth0ID: &auth0ID, Email: "left@example.com", Role: domain.RoleSubUser})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "left@example.com", "Left", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestMe_UserNotFound(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockWorkspaceRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|nonexistent", "test@example.com", "Test", "")
	setupPrincipal(c, adminOf(1))

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
