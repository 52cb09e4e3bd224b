package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVehicleClass(t *testing.T) {
	e := echo.New()
	h := NewVehicleClassHandler(service.NewVehicleClassService(testutil.NewMockVehicleClassRepository()))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/vehicle-classes",
		`{"name": "Two Wheeler", "commissionRate": 15, "agentRate": "7.25", "ourRate": 4}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateVehicleClass(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var vc domain.VehicleClass
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vc))
	assert.Equal(t, "Two Wheeler", vc.Name)
	assert.True(t, vc.AgentRate.Equal(decimal.RequireFromString("7.25")))
}

func TestCreateVehicleClass_Invalid(t *testing.T) {
	e := echo.New()
	h := NewVehicleClassHandler(service.NewVehicleClassService(testutil.NewMockVehicleClassRepository()))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/vehicle-classes", `{"name": "  ", "agentRate": 150}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateVehicleClass(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decodeProblem(t, rec).Errors, 2)
}

func TestCreateVehicleClass_MalformedBody(t *testing.T) {
	e := echo.New()
	h := NewVehicleClassHandler(service.NewVehicleClassService(testutil.NewMockVehicleClassRepository()))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/vehicle-classes", `{"agentRate": "lots"}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateVehicleClass(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeProblem(t, rec).Detail)
}

func TestUpdateVehicleClass_Rename(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockVehicleClassRepository()
	repo.AddVehicleClass(&domain.VehicleClass{ID: 1, WorkspaceID: 1, Name: "Car", AgentRate: decimal.NewFromInt(5), OurRate: decimal.NewFromInt(3), IsActive: true})
	repo.AddVehicleClass(&domain.VehicleClass{ID: 2, WorkspaceID: 1, Name: "Truck", IsActive: true})
	h := NewVehicleClassHandler(service.NewVehicleClassService(repo))

	c, rec := jsonContext(e, http.MethodPut, "/api/v1/vehicle-classes/1", `{"name": "truck"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.UpdateVehicleClass(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = jsonContext(e, http.MethodPut, "/api/v1/vehicle-classes/1", `{"name": "Private Car"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.UpdateVehicleClass(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var vc domain.VehicleClass
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vc))
	assert.Equal(t, "Private Car", vc.Name)
	assert.True(t, vc.AgentRate.Equal(decimal.NewFromInt(5)))
}

func TestGetVehicleClasses(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockVehicleClassRepository()
	for i, name := range []string{"Car", "Truck", "Bus"} {
		repo.AddVehicleClass(&domain.VehicleClass{ID: int32(i + 1), WorkspaceID: 1, Name: name, IsActive: true})
	}
	h := NewVehicleClassHandler(service.NewVehicleClassService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicle-classes?page=2&pageSize=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.GetVehicleClasses(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[domain.VehicleClass]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int32(2), page.TotalPages)
	assert.Len(t, page.Items, 1)
}
