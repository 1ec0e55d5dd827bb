package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/taskquery-api/internal/config"
	"github.com/phrazzld/taskquery-api/internal/delegate"
	"github.com/phrazzld/taskquery-api/internal/events"
	"github.com/phrazzld/taskquery-api/internal/query"
	"github.com/phrazzld/taskquery-api/internal/service"
	"github.com/phrazzld/taskquery-api/internal/store"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   *store.MemoryTaskStore
	emitter     *events.InMemoryEmitter
	taskService service.TaskService
}

// newApplication wires the store, translator, event emitter and task service
// around dlg.
func newApplication(cfg *config.Config, logger *slog.Logger, dlg delegate.Delegate) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.taskStore = store.NewMemoryTaskStore(logger)

	translator, err := query.LoadTranslator(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	app.emitter = events.NewInMemoryEmitter(logger)
	app.emitter.RegisterHandler(events.NewLogHandler(logger))

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		translator,
		dlg,
		app.emitter,
		cfg.LLM.Timeout(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run listens on the configured port and serves until ctx ends.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}

	if err := app.serve(ctx, ln, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources after the server stops.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed", "tasks_discarded", app.taskStore.Len())
}
