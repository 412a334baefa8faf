package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. Handlers map these to HTTP outcomes:
// ErrValidation -> 400, ErrUnauthorized -> 401, ErrForbidden -> 403,
// ErrNotFound -> 404, ErrConflict -> 409.
var (
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("conflict")
	ErrInternalServer = errors.New("internal server error")
)

// ValidationError carries a field-level validation message. It matches
// ErrValidation under errors.Is so handlers need a single branch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a field validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
