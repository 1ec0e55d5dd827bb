package domain

import (
	"slices"
	"strings"
)

// Status represents where a task is in its lifecycle.
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses(), s)
}

// Task is a single unit of work. Tasks are immutable once created.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	DueDate     *Date  `json:"due_date"`
}

// TaskInput holds the already-typed fields of a task to be created.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	DueDate     *Date
}

// Validate checks the typed fields against the creation rules.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError(KindMissingField, "title", "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewValidationError(KindMissingField, "description", "description is required")
	}
	if !in.Status.IsValid() {
		return NewValidationError(KindInvalidStatus, "status", invalidStatusMessage)
	}
	return nil
}

// NewTask builds a Task with the given ID from validated input.
func NewTask(id string, in TaskInput) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, NewValidationError(KindMissingField, "id", "id is required")
	}
	if err := in.Validate(); err != nil {
		return Task{}, err
	}

	task := Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}
	return task, nil
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return c
}
