package delegate

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a delegate failure.
type Kind string

// Delegate failure kinds.
const (
	KindUnavailable    Kind = "delegate_unavailable"
	KindTimeout        Kind = "delegate_timeout"
	KindContentBlocked Kind = "delegate_content_blocked"
)

// Common errors returned by delegates.
var (
	// ErrDelegate is matched by every *Error.
	ErrDelegate = errors.New("language model delegate failed")

	// ErrUnavailable covers network, quota and model-side failures.
	ErrUnavailable = errors.New("language model unavailable")

	// ErrTimeout is returned when the model does not answer in time.
	ErrTimeout = errors.New("language model did not respond in time")

	// ErrContentBlocked is returned when the model refuses to answer.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a delegate cannot be constructed.
	ErrInvalidConfig = errors.New("invalid delegate configuration")
)

var kindSentinels = map[Kind]error{
	KindUnavailable:    ErrUnavailable,
	KindTimeout:        ErrTimeout,
	KindContentBlocked: ErrContentBlocked,
}

// Error reports a failed delegate invocation.
type Error struct {
	Kind Kind
	Err  error
}

// NewError wraps err as a delegate failure of the given kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "language model delegate failed"
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		msg = sentinel.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap lets errors.Is match ErrDelegate, the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := []error{ErrDelegate}
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Classify turns any error returned by a delegate call into an *Error.
// Deadline expiry becomes KindTimeout; an existing *Error is kept as is;
// everything else is KindUnavailable.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var derr *Error
	if errors.As(err, &derr) {
		return derr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(KindTimeout, err)
	}
	return NewError(KindUnavailable, err)
}
