// Package mocks provides shared test doubles.
//
// Each mock has a function field per interface method for custom behavior,
// default return values used when the function is nil, and mutex-guarded
// call tracking for assertions:
//
//	dlg := &mocks.MockDelegate{
//	    InvokeFn: func(ctx context.Context, instruction string) (string, error) {
//	        return `{"tasks": []}`, nil
//	    },
//	}
//	// ... exercise code that calls dlg.Invoke ...
//	assert.Equal(t, 1, dlg.InvokeCallCount())
package mocks
