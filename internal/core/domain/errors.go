package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// Employee errors
var (
	ErrEmployeeNotFound = errors.New("employee not found: email and HR code do not match")
	ErrDuplicateRoster  = errors.New("duplicate roster entry")
)

// Request errors
var (
	ErrRecordNotFound  = fmt.Errorf("leave record %w", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("service request %w", ErrNotFound)
	ErrAlreadyResolved = fmt.Errorf("%w: request is already resolved", ErrConflict)
	ErrAdminNotFound   = fmt.Errorf("admin %w", ErrNotFound)
)

// Survey errors
var (
	ErrSurveyNotFound = fmt.Errorf("survey %w", ErrNotFound)
	ErrSurveyExists   = fmt.Errorf("%w: HR code already has a survey", ErrConflict)
)

// ValidationError carries the user-facing reason a request was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DeliveryError wraps a notification failure. It is logged, never returned to API callers.
type DeliveryError struct {
	Kind       string
	Recipients []string
	Err        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to %v: %v", e.Kind, e.Recipients, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
