package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskquery-api/internal/domain"
	"github.com/phrazzld/taskquery-api/internal/service"
)

// MockTaskService implements service.TaskService for testing.
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn func(ctx context.Context, payload map[string]any) (domain.Task, error)
	ListTasksFn  func(ctx context.Context) ([]domain.Task, error)
	RunQueryFn   func(ctx context.Context, q string) (domain.QueryResult, error)

	// Default response values
	Task   domain.Task
	Tasks  []domain.Task
	Result domain.QueryResult
	Count  int
	Err    error

	mu       sync.Mutex
	payloads []map[string]any
	queries  []string
	lists    int
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements service.TaskService.
func (m *MockTaskService) CreateTask(ctx context.Context, payload map[string]any) (domain.Task, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	m.mu.Unlock()

	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, payload)
	}
	return m.Task, m.Err
}

// ListTasks implements service.TaskService.
func (m *MockTaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	m.lists++
	m.mu.Unlock()

	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.Err
}

// RunQuery implements service.TaskService.
func (m *MockTaskService) RunQuery(ctx context.Context, q string) (domain.QueryResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if m.RunQueryFn != nil {
		return m.RunQueryFn(ctx, q)
	}
	return m.Result, m.Err
}

// TaskCount implements service.TaskService.
func (m *MockTaskService) TaskCount() int {
	return m.Count
}

// CreatePayloads returns the payloads passed to CreateTask.
func (m *MockTaskService) CreatePayloads() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]any(nil), m.payloads...)
}

// Queries returns the query texts passed to RunQuery.
func (m *MockTaskService) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// ListCallCount returns how many times ListTasks was called.
func (m *MockTaskService) ListCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}
