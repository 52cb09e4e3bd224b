package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// problemDetails represents an RFC 7807 Problem Details response
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error types, shared with the handler package
const (
	errorTypeUnauthorized = "https://brokerly.app/problems/unauthorized"
	errorTypeForbidden    = "https://brokerly.app/problems/forbidden"
	errorTypeRateLimit    = "https://brokerly.app/problems/rate-limit"
	errorTypeInternal     = "https://brokerly.app/problems/internal"
)

func problem(c echo.Context, status int, problemType, title, detail string) error {
	return c.JSON(status, problemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

func unauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, errorTypeUnauthorized, "Unauthorized", detail)
}

func forbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, errorTypeForbidden, "Forbidden", detail)
}

func rateLimitError(c echo.Context, detail string) error {
	return problem(c, http.StatusTooManyRequests, errorTypeRateLimit, "Rate Limit Exceeded", detail)
}

func internalError(c echo.Context) error {
	return problem(c, http.StatusInternalServerError, errorTypeInternal, "Internal Server Error", "An unexpected error occurred")
}
