package api

import "github.com/phrazzld/taskquery-api/internal/domain"

// CreateTaskResponse is returned by POST /tasks.
type CreateTaskResponse struct {
	Message string      `json:"message"`
	Task    domain.Task `json:"task"`
}

// TaskListResponse is returned by GET /tasks.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Tasks  int    `json:"tasks"`
}
