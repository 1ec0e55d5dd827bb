package delegate

import "context"

// Delegate sends an instruction to a language model and returns its raw,
// unvalidated answer.
type Delegate interface {
	// Invoke returns the model's text output for instruction. Failures are
	// reported as *Error values; the returned text is never interpreted here.
	Invoke(ctx context.Context, instruction string) (string, error)
}

// Func adapts an ordinary function to the Delegate interface.
type Func func(ctx context.Context, instruction string) (string, error)

// Invoke implements Delegate.
func (f Func) Invoke(ctx context.Context, instruction string) (string, error) {
	return f(ctx, instruction)
}
