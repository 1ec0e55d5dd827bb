package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskquery-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskquery-api/internal/api/middleware"
)

// setupRouter creates the router with middleware and all task routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.RequestLog)
	r.Use(middleware.Recoverer)

	api.NewTaskHandler(app.taskService).Routes(r)

	return r
}
