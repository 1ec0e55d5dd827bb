package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskquery-api/internal/api/shared"
	"github.com/phrazzld/taskquery-api/internal/domain"
	"github.com/phrazzld/taskquery-api/internal/service"
)

// TaskHandler handles task and query HTTP requests.
type TaskHandler struct {
	service service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{service: taskService}
}

// Routes registers the handler's endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks", h.ListTasks)
	r.Post("/query", h.Query)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	payload, err := shared.DecodeJSONObject(w, r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err,
			shared.WithKind(KindInvalidRequest))
		return
	}

	task, err := h.service.CreateTask(r.Context(), payload)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{
		Message: "Task created",
		Task:    task,
	})
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// Query handles POST /query. The body must be an object whose "query" key
// holds a non-blank string.
func (h *TaskHandler) Query(w http.ResponseWriter, r *http.Request) {
	payload, err := shared.DecodeJSONObject(w, r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgMissingQuery, err,
			shared.WithKind(KindMissingQuery))
		return
	}

	raw, ok := payload["query"]
	if !ok || raw == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMissingQuery,
			shared.WithKind(KindMissingQuery))
		return
	}
	text, ok := raw.(string)
	if !ok || strings.TrimSpace(text) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidQuery,
			shared.WithKind(KindInvalidQuery))
		return
	}

	result, err := h.service.RunQuery(r.Context(), text)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Health handles GET /health.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Tasks:  h.service.TaskCount(),
	})
}

func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	opts := []shared.ErrorOption{shared.WithKind(ErrorKind(err))}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		opts = append(opts, shared.WithField(verr.Field))
	}
	if detail := errorDetail(err); detail != nil {
		opts = append(opts, shared.WithDetails(detail))
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
