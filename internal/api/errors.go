package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskquery-api/internal/delegate"
	"github.com/phrazzld/taskquery-api/internal/domain"
	"github.com/phrazzld/taskquery-api/internal/query"
)

// Error kinds reported for request-level problems that are not domain
// validation errors.
const (
	KindInvalidRequest = "invalid_request"
	KindMissingQuery   = "missing_query"
	KindInvalidQuery   = "invalid_query"
	KindInternal       = "internal"
)

// User-facing messages.
const (
	msgMissingQuery    = "Missing query field"
	msgInvalidQuery    = "Query must be a non-empty string"
	msgInvalidBody     = "Request body must be a JSON object"
	msgResultError     = "Failed to parse AI response"
	msgDelegateError   = "Error processing query"
	msgDelegateTimeout = "Query timed out"
	msgUnexpected      = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, query.ErrEmptyQuery):
		return http.StatusBadRequest

	// Model failures are server errors, including timeouts.
	case errors.Is(err, query.ErrInvalidResult),
		errors.Is(err, delegate.ErrDelegate):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, query.ErrEmptyQuery):
		return msgInvalidQuery
	case errors.Is(err, query.ErrInvalidResult):
		return msgResultError
	case errors.Is(err, delegate.ErrTimeout):
		return msgDelegateTimeout
	case errors.Is(err, delegate.ErrDelegate):
		return msgDelegateError
	default:
		return msgUnexpected
	}
}

// ErrorKind returns the machine-readable kind of err.
func ErrorKind(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return string(verr.Kind)
	}
	var rerr *query.ResultError
	if errors.As(err, &rerr) {
		return string(rerr.Kind)
	}
	var derr *delegate.Error
	if errors.As(err, &derr) {
		return string(derr.Kind)
	}
	if errors.Is(err, query.ErrEmptyQuery) {
		return KindInvalidQuery
	}
	return KindInternal
}

// errorDetail returns the innermost typed error, without service context,
// for the details field of 5xx responses.
func errorDetail(err error) error {
	var rerr *query.ResultError
	if errors.As(err, &rerr) {
		return rerr
	}
	var derr *delegate.Error
	if errors.As(err, &derr) {
		return derr
	}
	return nil
}
