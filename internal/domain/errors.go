package domain

import (
	"errors"
	"fmt"
)

// ValidationKind identifies which creation rule a payload broke.
type ValidationKind string

// Validation kinds reported for task creation payloads.
const (
	KindMissingField  ValidationKind = "missing_field"
	KindWrongType     ValidationKind = "wrong_type"
	KindInvalidStatus ValidationKind = "invalid_status"
	KindInvalidDate   ValidationKind = "invalid_date"
)

// Common domain errors used across the application.
var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrMissingField is returned when a required field is absent or blank.
	ErrMissingField = errors.New("missing required field")

	// ErrWrongType is returned when a field holds a non-text value.
	ErrWrongType = errors.New("invalid field type")

	// ErrInvalidStatus is returned when a status is not one of the known values.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidDate is returned when a due date is not a valid YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid due_date")
)

var kindSentinels = map[ValidationKind]error{
	KindMissingField:  ErrMissingField,
	KindWrongType:     ErrWrongType,
	KindInvalidStatus: ErrInvalidStatus,
	KindInvalidDate:   ErrInvalidDate,
}

// ValidationError describes why a task creation payload was rejected.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind ValidationKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match both ErrValidation and the kind sentinel.
func (e *ValidationError) Unwrap() []error {
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		return []error{ErrValidation, sentinel}
	}
	return []error{ErrValidation}
}
