package query

import (
	"errors"
	"fmt"
)

// ResultKind classifies why a model answer was rejected.
type ResultKind string

// Result error kinds.
const (
	KindParseFailure    ResultKind = "parse_failure"
	KindSchemaViolation ResultKind = "schema_violation"
)

// Errors returned by the query package.
var (
	// ErrInvalidResult is matched by every *ResultError.
	ErrInvalidResult = errors.New("invalid response from language model")

	// ErrParseFailure is returned when the answer is not valid JSON.
	ErrParseFailure = errors.New("language model response is not valid JSON")

	// ErrSchemaViolation is returned when the answer is JSON of the wrong shape.
	ErrSchemaViolation = errors.New("language model response does not match the result schema")

	// ErrEmptyQuery is returned when a query has no text.
	ErrEmptyQuery = errors.New("query must be a non-empty string")

	// ErrInvalidTemplate is returned when a prompt template cannot be loaded.
	ErrInvalidTemplate = errors.New("invalid prompt template")
)

// ResultError reports a model answer that was rejected.
type ResultError struct {
	Kind ResultKind
	// Path locates the offending value, e.g. "tasks[2].status". Empty for
	// parse failures and for the top-level value.
	Path   string
	Detail string
}

func parseFailure(detail string) *ResultError {
	return &ResultError{Kind: KindParseFailure, Detail: detail}
}

func schemaViolation(path, detail string) *ResultError {
	return &ResultError{Kind: KindSchemaViolation, Path: path, Detail: detail}
}

// Error implements the error interface.
func (e *ResultError) Error() string {
	base := ErrInvalidResult.Error()
	switch e.Kind {
	case KindParseFailure:
		base = ErrParseFailure.Error()
	case KindSchemaViolation:
		base = ErrSchemaViolation.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s", base, e.Path, e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", base, e.Detail)
	}
	return base
}

// Unwrap lets errors.Is match ErrInvalidResult and the kind sentinel.
func (e *ResultError) Unwrap() []error {
	switch e.Kind {
	case KindParseFailure:
		return []error{ErrInvalidResult, ErrParseFailure}
	case KindSchemaViolation:
		return []error{ErrInvalidResult, ErrSchemaViolation}
	default:
		return []error{ErrInvalidResult}
	}
}
