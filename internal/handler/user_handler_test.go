package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberRig struct {
	users      *testutil.MockUserRepository
	workspaces *testutil.MockWorkspaceRepository
	admin      *domain.User
	clerk      *domain.User
	handler    *UserHandler
}

func newMemberRig() *memberRig {
	r := &memberRig{
		users:      testutil.NewMockUserRepository(),
		workspaces: testutil.NewMockWorkspaceRepository(),
	}
	r.workspaces.AddWorkspace(&domain.Workspace{ID: 1, Name: "Shah Brokers"})
	r.admin = &domain.User{WorkspaceID: 1, Email: "owner@example.com", Name: "Owner", Username: "owner", Role: domain.RoleAdmin, IsActive: true}
	r.clerk = &domain.User{WorkspaceID: 1, Email: "clerk@example.com", Name: "Clerk", Username: "clerk", Role: domain.RoleSubUser, IsActive: true}
	r.users.AddUser(r.admin)
	r.users.AddUser(r.clerk)
	r.handler = NewUserHandler(service.NewUserService(r.users), service.NewWorkspaceService(r.workspaces))
	return r
}

func (r *memberRig) asAdmin() domain.Principal {
	return domain.Principal{UserID: r.admin.ID, WorkspaceID: 1, Role: domain.RoleAdmin}
}

func (r *memberRig) asClerk() domain.Principal {
	return domain.Principal{UserID: r.clerk.ID, WorkspaceID: 1, Role: domain.RoleSubUser}
}

func TestInviteUser(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/users", `{"email": "New@Example.com", "name": "New Hire", "username": "newhire"}`)
	setupPrincipal(c, r.asAdmin())

	require.NoError(t, r.handler.InviteUser(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleSubUser, user.Role)
	assert.Equal(t, int32(1), user.WorkspaceID)
}

func TestInviteUser_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		clerk  bool
		status int
	}{
		{"sub-user", `{"email": "a@example.com", "name": "A", "username": "aaa"}`, true, http.StatusForbidden},
		{"email taken", `{"email": "CLERK@example.com", "name": "A", "username": "aaa"}`, false, http.StatusConflict},
		{"username taken", `{"email": "a@example.com", "name": "A", "username": "clerk"}`, false, http.StatusConflict},
		{"invalid role", `{"email": "a@example.com", "name": "A", "username": "aaa", "role": "owner"}`, false, http.StatusBadRequest},
		{"malformed", `{"email":`, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			r := newMemberRig()
			c, rec := jsonContext(e, http.MethodPost, "/api/v1/users", tt.body)
			if tt.clerk {
				setupPrincipal(c, r.asClerk())
			} else {
				setupPrincipal(c, r.asAdmin())
			}

			require.NoError(t, r.handler.InviteUser(c))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestListUsers(t *testing.T) {
	e := echo.New()
	r := newMemberRig()
	r.users.AddUser(&domain.User{WorkspaceID: 2, Email: "elsewhere@example.com", Name: "Elsewhere", Username: "elsewhere", Role: domain.RoleAdmin})

	c, rec := jsonContext(e, http.MethodGet, "/api/v1/users", "")
	setupPrincipal(c, r.asAdmin())
	require.NoError(t, r.handler.ListUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var users []domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	c, rec = jsonContext(e, http.MethodGet, "/api/v1/users", "")
	setupPrincipal(c, r.asClerk())
	require.NoError(t, r.handler.ListUsers(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateUser_Promote(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodPut, "/api/v1/users/"+r.clerk.ID.String(), `{"role": "admin"}`)
	c.SetParamNames("id")
	c.SetParamValues(r.clerk.ID.String())
	setupPrincipal(c, r.asAdmin())

	require.NoError(t, r.handler.UpdateUser(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.RoleAdmin, r.users.ByID[r.clerk.ID].Role)
	assert.Equal(t, "Clerk", r.users.ByID[r.clerk.ID].Name)
}

func TestUpdateUser_InvalidID(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodPut, "/api/v1/users/42", `{"name": "X"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	setupPrincipal(c, r.asAdmin())

	require.NoError(t, r.handler.UpdateUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeactivateUser(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodDelete, "/api/v1/users/"+r.clerk.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(r.clerk.ID.String())
	setupPrincipal(c, r.asAdmin())

	require.NoError(t, r.handler.DeactivateUser(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, r.users.ByID[r.clerk.ID].IsActive)
}

func TestDeactivateUser_Self(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodDelete, "/api/v1/users/"+r.admin.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(r.admin.ID.String())
	setupPrincipal(c, r.asAdmin())

	require.NoError(t, r.handler.DeactivateUser(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, r.users.ByID[r.admin.ID].IsActive)
}

func TestProfile(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodGet, "/api/v1/profile", "")
	setupPrincipal(c, r.asClerk())
	require.NoError(t, r.handler.GetProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"clerk"`)

	c, rec = jsonContext(e, http.MethodPut, "/api/v1/profile", `{"phoneNumber": "9876543210"}`)
	setupPrincipal(c, r.asClerk())
	require.NoError(t, r.handler.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "9876543210", r.users.ByID[r.clerk.ID].PhoneNumber)

	c, rec = jsonContext(e, http.MethodPut, "/api/v1/profile", `{"phoneNumber": "12"}`)
	setupPrincipal(c, r.asClerk())
	require.NoError(t, r.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile_NoWorkspace(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodGet, "/api/v1/profile", "")
	require.NoError(t, r.handler.GetProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRenameWorkspace(t *testing.T) {
	e := echo.New()
	r := newMemberRig()

	c, rec := jsonContext(e, http.MethodPut, "/api/v1/workspace", `{"name": "  Shah & Sons "}`)
	setupPrincipal(c, r.asAdmin())
	require.NoError(t, r.handler.RenameWorkspace(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ws, err := r.workspaces.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Shah & Sons", ws.Name)

	c, rec = jsonContext(e, http.MethodPut, "/api/v1/workspace", `{"name": "Mine now"}`)
	setupPrincipal(c, r.asClerk())
	require.NoError(t, r.handler.RenameWorkspace(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = jsonContext(e, http.MethodPut, "/api/v1/workspace", `{"name": " "}`)
	setupPrincipal(c, r.asAdmin())
	require.NoError(t, r.handler.RenameWorkspace(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
