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

func TestCreateProvider_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	h := NewProviderHandler(service.NewProviderService(repo))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/insurance-providers",
		`{"name": " National Insurance ", "agentRate": 5, "ourRate": "3.5", "tds": 10, "gst": 18}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateProvider(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var provider domain.Provider
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &provider))
	assert.Equal(t, "National Insurance", provider.Name)
	assert.True(t, provider.OurRate.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, provider.IsActive, "providers are active unless stated otherwise")
	assert.Equal(t, int32(1), provider.WorkspaceID)
}

func TestCreateProvider_RateOutOfRange(t *testing.T) {
	e := echo.New()
	h := NewProviderHandler(service.NewProviderService(testutil.NewMockProviderRepository()))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/insurance-providers",
		`{"name": "Acme", "agentRate": 5, "ourRate": 3, "tds": 101, "gst": -1}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateProvider(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	problem := decodeProblem(t, rec)
	fields := []string{}
	for _, fe := range problem.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"tds", "gst"}, fields)
}

func TestCreateProvider_DuplicateName(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "Acme", IsActive: true})
	h := NewProviderHandler(service.NewProviderService(repo))

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/insurance-providers", `{"name": "acme"}`)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.CreateProvider(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetProviders_SearchAndFilter(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "National Insurance", IsActive: true})
	repo.AddProvider(&domain.Provider{ID: 2, WorkspaceID: 1, Name: "New India Assurance", IsActive: false})
	repo.AddProvider(&domain.Provider{ID: 3, WorkspaceID: 2, Name: "National Other", IsActive: true})
	h := NewProviderHandler(service.NewProviderService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insurance-providers?search=nat&isActive=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.GetProviders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[domain.Provider]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int32(1), page.Items[0].ID)
	assert.Equal(t, int64(1), page.Total)
}

func TestGetProviders_InvalidQuery(t *testing.T) {
	e := echo.New()
	h := NewProviderHandler(service.NewProviderService(testutil.NewMockProviderRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insurance-providers?page=first&isActive=maybe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.GetProviders(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProviders_PageBeyondEnd(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "Acme", IsActive: true})
	h := NewProviderHandler(service.NewProviderService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insurance-providers?page=2147483647&pageSize=100", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.GetProviders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[domain.Provider]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, domain.MaxPage, page.Page)
}

func TestUpdateProvider_PartialUpdate(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "Acme", TDS: decimal.NewFromInt(10), GST: decimal.NewFromInt(18), IsActive: true})
	h := NewProviderHandler(service.NewProviderService(repo))

	c, rec := jsonContext(e, http.MethodPut, "/api/v1/insurance-providers/1", `{"gst": 12}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, h.UpdateProvider(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var provider domain.Provider
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &provider))
	assert.Equal(t, "Acme", provider.Name)
	assert.True(t, provider.TDS.Equal(decimal.NewFromInt(10)))
	assert.True(t, provider.GST.Equal(decimal.NewFromInt(12)))
}

func TestDeleteProvider(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "Acme", IsActive: true})
	h := NewProviderHandler(service.NewProviderService(repo))

	for _, tc := range []struct {
		id     string
		status int
	}{
		{"1", http.StatusNoContent},
		{"1", http.StatusNotFound},
		{"x", http.StatusBadRequest},
	} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/insurance-providers/"+tc.id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(tc.id)
		setupPrincipal(c, subUserOf(1))

		require.NoError(t, h.DeleteProvider(c))
		assert.Equal(t, tc.status, rec.Code, "delete %s", tc.id)
	}
}
