package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/taskquery-api/internal/delegate"
	"github.com/phrazzld/taskquery-api/internal/domain"
	"github.com/phrazzld/taskquery-api/internal/events"
	"github.com/phrazzld/taskquery-api/internal/platform/logger"
	"github.com/phrazzld/taskquery-api/internal/query"
	"github.com/phrazzld/taskquery-api/internal/store"
)

// Translator renders the delegate instruction for a query.
type Translator interface {
	Translate(q string, tasks []domain.Task) (string, error)
}

// TaskService provides the task operations exposed over HTTP.
type TaskService interface {
	// CreateTask validates payload, a decoded JSON object, and stores a new
	// task. Invalid payloads return a *domain.ValidationError.
	CreateTask(ctx context.Context, payload map[string]any) (domain.Task, error)

	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// RunQuery answers a natural-language query over the current tasks.
	// Failures carry a *query.ResultError or a *delegate.Error; a blank
	// query fails with query.ErrEmptyQuery before the delegate is called.
	RunQuery(ctx context.Context, q string) (domain.QueryResult, error)

	// TaskCount returns the number of stored tasks.
	TaskCount() int
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store        store.TaskStore
	translator   Translator
	delegate     delegate.Delegate
	emitter      events.Emitter
	queryTimeout time.Duration
	logger       *slog.Logger
}

// NewTaskService creates a TaskService. emitter may be nil, in which case
// events are discarded. queryTimeout bounds each delegate call and must be
// positive.
func NewTaskService(
	taskStore store.TaskStore,
	translator Translator,
	dlg delegate.Delegate,
	emitter events.Emitter,
	queryTimeout time.Duration,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, NewTaskServiceError("create_service", "taskStore cannot be nil", ErrInvalidDependency)
	}
	if translator == nil {
		return nil, NewTaskServiceError("create_service", "translator cannot be nil", ErrInvalidDependency)
	}
	if dlg == nil {
		return nil, NewTaskServiceError("create_service", "delegate cannot be nil", ErrInvalidDependency)
	}
	if queryTimeout <= 0 {
		return nil, NewTaskServiceError("create_service",
			fmt.Sprintf("query timeout must be positive, got %s", queryTimeout), ErrInvalidDependency)
	}
	if emitter == nil {
		emitter = events.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:        taskStore,
		translator:   translator,
		delegate:     dlg,
		emitter:      emitter,
		queryTimeout: queryTimeout,
		logger:       logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, payload map[string]any) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	input, err := domain.ParseNewTask(payload)
	if err != nil {
		log.DebugContext(ctx, "rejected task payload", "error", err)
		return domain.Task{}, NewTaskServiceError("create_task", "invalid task payload", err)
	}

	task, err := s.store.Create(ctx, input)
	if err != nil {
		log.ErrorContext(ctx, "failed to store task", "error", err)
		return domain.Task{}, NewTaskServiceError("create_task", "failed to store task", err)
	}

	log.InfoContext(ctx, "task created",
		"task_id", task.ID,
		"status", task.Status)

	s.emit(ctx, events.TypeTaskCreated, events.TaskCreated{
		TaskID:     task.ID,
		Status:     string(task.Status),
		HasDueDate: task.DueDate != nil,
		TaskCount:  s.store.Len(),
	})

	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// TaskCount implements TaskService.
func (s *taskServiceImpl) TaskCount() int {
	return s.store.Len()
}

// RunQuery implements TaskService.
func (s *taskServiceImpl) RunQuery(ctx context.Context, q string) (domain.QueryResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := time.Now()

	if strings.TrimSpace(q) == "" {
		return domain.QueryResult{}, NewTaskServiceError("run_query", "query is empty", query.ErrEmptyQuery)
	}

	snapshot, err := s.store.List(ctx)
	if err != nil {
		return domain.QueryResult{}, NewTaskServiceError("run_query", "failed to snapshot tasks", err)
	}

	instruction, err := s.translator.Translate(q, snapshot)
	if err != nil {
		return domain.QueryResult{}, NewTaskServiceError("run_query", "failed to build instruction", err)
	}

	log.DebugContext(ctx, "invoking delegate",
		"query_length", len(q),
		"candidates", len(snapshot),
		"instruction_length", len(instruction),
		"timeout", s.queryTimeout.String())

	raw, err := s.invoke(ctx, instruction)
	if err != nil {
		s.queryCompleted(ctx, q, len(snapshot), 0, outcomeOf(err), start)
		return domain.QueryResult{}, NewTaskServiceError("run_query", "delegate call failed", err)
	}

	result, err := query.Validate(raw)
	if err != nil {
		log.WarnContext(ctx, "delegate answer rejected",
			"error", err,
			"response_length", len(raw))
		s.queryCompleted(ctx, q, len(snapshot), 0, outcomeOf(err), start)
		return domain.QueryResult{}, NewTaskServiceError("run_query", "invalid delegate answer", err)
	}

	log.InfoContext(ctx, "query answered",
		"candidates", len(snapshot),
		"matches", result.Len(),
		"duration", time.Since(start).String())
	s.queryCompleted(ctx, q, len(snapshot), result.Len(), "ok", start)

	return result, nil
}

type invokeResult struct {
	raw string
	err error
}

// invoke calls the delegate under the query timeout. The call is abandoned
// when the deadline passes even if the delegate ignores its context.
func (s *taskServiceImpl) invoke(ctx context.Context, instruction string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	done := make(chan invokeResult, 1)
	go func() {
		raw, err := s.delegate.Invoke(callCtx, instruction)
		done <- invokeResult{raw: raw, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil {
			return res.raw, nil
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(res.err, delegate.ErrTimeout) {
			return "", delegate.NewError(delegate.KindTimeout, res.err)
		}
		return "", delegate.Classify(res.err)
	case <-callCtx.Done():
		return "", delegate.Classify(callCtx.Err())
	}
}

func (s *taskServiceImpl) queryCompleted(ctx context.Context, q string, candidates, matches int, outcome string, start time.Time) {
	s.emit(ctx, events.TypeQueryCompleted, events.QueryCompleted{
		QueryLength: len(q),
		Candidates:  candidates,
		Matches:     matches,
		Outcome:     outcome,
		DurationMS:  time.Since(start).Milliseconds(),
	})
}

// emit publishes an event. Emission failures are logged, never returned.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, payload any) {
	event, err := events.NewEvent(eventType, payload)
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "failed to emit event",
			"event_type", eventType,
			"error", err)
	}
}

// outcomeOf names the error kind recorded in query events.
func outcomeOf(err error) string {
	var derr *delegate.Error
	if errors.As(err, &derr) {
		return string(derr.Kind)
	}
	var rerr *query.ResultError
	if errors.As(err, &rerr) {
		return string(rerr.Kind)
	}
	return "error"
}
