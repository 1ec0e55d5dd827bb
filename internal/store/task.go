package store

import (
	"context"

	"github.com/phrazzld/taskquery-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create validates in, assigns a fresh unique ID, appends the task and
	// returns a copy of what was stored.
	// Returns a *domain.ValidationError if in is invalid.
	Create(ctx context.Context, in domain.TaskInput) (domain.Task, error)

	// List returns every stored task in insertion order. The returned slice
	// is a snapshot: later writes never change it.
	List(ctx context.Context) ([]domain.Task, error)

	// Len returns the number of stored tasks.
	Len() int
}
