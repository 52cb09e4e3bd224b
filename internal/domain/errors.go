package domain

import "errors"

// Generic sentinels. Entity-specific errors live next to their entity and the
// handler layer maps both kinds to problem responses.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
)

// MaxNameLength bounds every free-text name column
const MaxNameLength = 255
