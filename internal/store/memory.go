package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskquery-api/internal/domain"
)

// maxIDAttempts bounds how many identifiers Create draws before giving up.
const maxIDAttempts = 3

// MemoryTaskStore keeps tasks in process memory behind a read/write lock.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	ids    map[string]struct{}
	newID  func() string
	logger *slog.Logger
}

// Option configures a MemoryTaskStore.
type Option func(*MemoryTaskStore)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryTaskStore) {
		s.newID = gen
	}
}

// NewMemoryTaskStore creates an empty store.
func NewMemoryTaskStore(logger *slog.Logger, opts ...Option) *MemoryTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MemoryTaskStore{
		ids:    make(map[string]struct{}),
		newID:  uuid.NewString,
		logger: logger.With("component", "memory_task_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ TaskStore = (*MemoryTaskStore)(nil)

// Create implements TaskStore.
func (s *MemoryTaskStore) Create(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	if err := in.Validate(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueIDLocked()
	if err != nil {
		return domain.Task{}, err
	}

	task, err := domain.NewTask(id, in)
	if err != nil {
		return domain.Task{}, err
	}

	s.tasks = append(s.tasks, task)
	s.ids[id] = struct{}{}

	s.logger.DebugContext(ctx, "task stored",
		"task_id", id,
		"task_count", len(s.tasks))

	return task.Clone(), nil
}

// List implements TaskStore.
func (s *MemoryTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		snapshot[i] = t.Clone()
	}
	return snapshot, nil
}

// Len implements TaskStore.
func (s *MemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// uniqueIDLocked must be called with s.mu held for writing.
func (s *MemoryTaskStore) uniqueIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if _, taken := s.ids[id]; !taken && id != "" {
			return id, nil
		}
		s.logger.Warn("generated task id already in use", "attempt", attempt+1)
	}
	return "", fmt.Errorf("%w: gave up after %d attempts", ErrDuplicateID, maxIDAttempts)
}
