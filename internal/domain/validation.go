package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// dangerousChars may not appear in free-text location fields
const dangerousChars = "${};<>`"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so problem documents match request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("safetext", func(fl validator.FieldLevel) bool {
		return !ContainsDangerousChars(fl.Field().String())
	})
	return v
}

// IsValidPhone checks for exactly 10 digits
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidEmail checks for a something@domain.tld shape
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ContainsDangerousChars reports whether s contains any of $ { } ; < > `
func ContainsDangerousChars(s string) bool {
	return strings.ContainsAny(s, dangerousChars)
}

// FieldError is a single field-specific validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field errors. It matches ErrInvalidInput with errors.Is.
type ValidationErrors []FieldError

// Add appends a field error
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Merge appends every field error of err when it is a ValidationErrors
func (v *ValidationErrors) Merge(err error) {
	var other ValidationErrors
	if errors.As(err, &other) {
		*v = append(*v, other...)
	}
}

// OrNil returns nil when no errors were collected
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateStruct runs the struct's validate tags and converts failures to ValidationErrors
func ValidateStruct(s any) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name, e.g. Agent.location.city -> location.city
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "phone10":
		return "must be exactly 10 digits"
	case "emailaddr":
		return "must be a valid email address"
	case "safetext":
		return "must not contain any of " + dangerousChars
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
