package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError = domain.FieldError

// Error types
const (
	ErrorTypeValidation         = "https://brokerly.app/problems/validation"
	ErrorTypeNotFound           = "https://brokerly.app/problems/not-found"
	ErrorTypeUnauthorized       = "https://brokerly.app/problems/unauthorized"
	ErrorTypeForbidden          = "https://brokerly.app/problems/forbidden"
	ErrorTypeConflict           = "https://brokerly.app/problems/conflict"
	ErrorTypeServiceUnavailable = "https://brokerly.app/problems/service-unavailable"
	ErrorTypeInternal           = "https://brokerly.app/problems/internal"
)

func newProblem(c echo.Context, status int, problemType, title, detail string, errs []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return newProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, errors)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail, nil)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail, nil)
}

// NewServiceUnavailableError creates a 503 response for features that are switched off
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusServiceUnavailable, ErrorTypeServiceUnavailable, "Service Unavailable", detail, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return newProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrWorkspaceNotFound,
	domain.ErrAgentNotFound,
	domain.ErrProviderNotFound,
	domain.ErrVehicleClassNotFound,
	domain.ErrPolicyNotFound,
	domain.ErrDocumentNotFound,
	domain.ErrAPITokenNotFound,
}

var conflictErrors = []error{
	domain.ErrAlreadyExists,
	domain.ErrAgentPhoneExists,
	domain.ErrProviderNameExists,
	domain.ErrVehicleClassNameExists,
	domain.ErrPolicyNumberExists,
	domain.ErrUserEmailExists,
	domain.ErrUsernameExists,
}

var forbiddenErrors = []error{
	domain.ErrForbidden,
	domain.ErrAdminRoleRequired,
	domain.ErrCannotModifySelf,
	domain.ErrUserInactive,
}

// documentErrors are upload rejections reported against the file field
var documentErrors = []error{
	service.ErrDocumentTooLarge,
	service.ErrDocumentInvalidFormat,
	service.ErrDocumentTooSmall,
	service.ErrDocumentInvalidData,
}

// requestError converts a service error into a problem document. Errors that
// map to no client-facing status are logged and reported with a generic detail.
func requestError(c echo.Context, err error, action string) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(c, "Validation failed", verrs)
	}

	switch {
	case errors.Is(err, domain.ErrReportStartRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{{Field: "startDate", Message: "is required"}})
	case errors.Is(err, domain.ErrReportRangeInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{{Field: "endDate", Message: "must not be before start date"}})
	case errors.Is(err, domain.ErrTooManyAPITokens):
		return NewValidationError(c, "Maximum number of API tokens reached (10)", nil)
	case errors.Is(err, service.ErrDocumentStorageNotConfigured):
		return NewServiceUnavailableError(c, "Document uploads are disabled (storage not configured)")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	}

	for _, target := range documentErrors {
		if errors.Is(err, target) {
			return NewValidationError(c, "Validation failed", []ValidationError{{Field: "file", Message: target.Error()}})
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return NewNotFoundError(c, capitalize(target.Error()))
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return NewConflictError(c, capitalize(target.Error()))
		}
	}
	for _, target := range forbiddenErrors {
		if errors.Is(err, target) {
			return NewForbiddenError(c, capitalize(target.Error()))
		}
	}

	log.Error().
		Err(err).
		Int32("workspace_id", middleware.GetWorkspaceID(c)).
		Str("path", c.Path()).
		Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
