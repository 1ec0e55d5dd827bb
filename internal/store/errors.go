package store

import "errors"

// Common store errors.
var (
	// ErrDuplicateID is returned when the store cannot produce an identifier
	// that is not already in use.
	ErrDuplicateID = errors.New("duplicate task id")
)
