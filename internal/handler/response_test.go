package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem), "body: %s", rec.Body.String())
	return problem
}

func TestRequestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantDetail string
		wantField  string
	}{
		{
			name:       "field errors",
			err:        domain.ValidationErrors{{Field: "premiumAmount", Message: "must be greater than zero"}},
			wantStatus: http.StatusBadRequest,
			wantType:   ErrorTypeValidation,
			wantField:  "premiumAmount",
		},
		{
			name:       "report without start",
			err:        domain.ErrReportStartRequired,
			wantStatus: http.StatusBadRequest,
			wantType:   ErrorTypeValidation,
			wantField:  "startDate",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("load: %w", domain.ErrPolicyNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   ErrorTypeNotFound,
			wantDetail: "Policy not found",
		},
		{
			name:       "duplicate",
			err:        domain.ErrAgentPhoneExists,
			wantStatus: http.StatusConflict,
			wantType:   ErrorTypeConflict,
			wantDetail: "Agent with this phone number already exists",
		},
		{
			name:       "sub-user",
			err:        domain.ErrAdminRoleRequired,
			wantStatus: http.StatusForbidden,
			wantType:   ErrorTypeForbidden,
		},
		{
			name:       "document rejected",
			err:        service.ErrDocumentInvalidFormat,
			wantStatus: http.StatusBadRequest,
			wantType:   ErrorTypeValidation,
			wantField:  "file",
		},
		{
			name:       "storage off",
			err:        service.ErrDocumentStorageNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   ErrorTypeServiceUnavailable,
		},
		{
			name:       "token limit",
			err:        domain.ErrTooManyAPITokens,
			wantStatus: http.StatusBadRequest,
			wantType:   ErrorTypeValidation,
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantType:   ErrorTypeInternal,
			wantDetail: "Failed to get policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/policies/1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, requestError(c, tt.err, "get policy"))
			assert.Equal(t, tt.wantStatus, rec.Code)

			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, tt.wantStatus, problem.Status)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, problem.Detail)
			}
			if tt.wantField != "" {
				require.Len(t, problem.Errors, 1)
				assert.Equal(t, tt.wantField, problem.Errors[0].Field)
			}
		})
	}
}
