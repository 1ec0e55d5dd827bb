package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskquery-api/internal/delegate"
)

// MockDelegate implements delegate.Delegate for testing.
type MockDelegate struct {
	// InvokeFn allows test cases to mock the Invoke behavior
	InvokeFn func(ctx context.Context, instruction string) (string, error)

	// Default response values
	Response string
	Err      error

	// Call tracking for verification
	InvokeCalls struct {
		mu           sync.Mutex
		Count        int
		Instructions []string
		Contexts     []context.Context
	}
}

var _ delegate.Delegate = (*MockDelegate)(nil)

// Invoke implements delegate.Delegate.
func (m *MockDelegate) Invoke(ctx context.Context, instruction string) (string, error) {
	m.InvokeCalls.mu.Lock()
	m.InvokeCalls.Count++
	m.InvokeCalls.Instructions = append(m.InvokeCalls.Instructions, instruction)
	m.InvokeCalls.Contexts = append(m.InvokeCalls.Contexts, ctx)
	m.InvokeCalls.mu.Unlock()

	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, instruction)
	}
	return m.Response, m.Err
}

// InvokeCallCount returns how many times Invoke was called.
func (m *MockDelegate) InvokeCallCount() int {
	m.InvokeCalls.mu.Lock()
	defer m.InvokeCalls.mu.Unlock()
	return m.InvokeCalls.Count
}

// LastInstruction returns the instruction of the most recent call, or "".
func (m *MockDelegate) LastInstruction() string {
	m.InvokeCalls.mu.Lock()
	defer m.InvokeCalls.mu.Unlock()
	if len(m.InvokeCalls.Instructions) == 0 {
		return ""
	}
	return m.InvokeCalls.Instructions[len(m.InvokeCalls.Instructions)-1]
}

// NewMockDelegateWithResponse creates a MockDelegate that always answers raw.
func NewMockDelegateWithResponse(raw string) *MockDelegate {
	return &MockDelegate{Response: raw}
}

// NewMockDelegateWithError creates a MockDelegate that always fails with err.
func NewMockDelegateWithError(err error) *MockDelegate {
	return &MockDelegate{Err: err}
}

// NewBlockingMockDelegate creates a MockDelegate that waits for its context
// to end and returns the context error.
func NewBlockingMockDelegate() *MockDelegate {
	return &MockDelegate{
		InvokeFn: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}
