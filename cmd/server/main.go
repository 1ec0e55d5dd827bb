// Package main implements the entry point for the task query API server,
// which stores tasks in memory and answers natural-language queries over
// them through a Gemini-backed language model.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskquery-api/internal/config"
	"github.com/phrazzld/taskquery-api/internal/platform/gemini"
	"github.com/phrazzld/taskquery-api/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application and serves until ctx ends.
func run(ctx context.Context) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	dlg, err := gemini.NewGeminiDelegate(ctx, log, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini delegate: %w", err)
	}
	log.Info("Gemini delegate initialized",
		"model", cfg.LLM.ModelName,
		"timeout", cfg.LLM.Timeout().String(),
		"max_retries", cfg.LLM.MaxRetries)

	app, err := newApplication(cfg, log, dlg)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	log.Debug("LLM configuration",
		"model", cfg.LLM.ModelName,
		"api_key_present", cfg.LLM.GeminiAPIKey != "",
		"prompt_template_path", cfg.LLM.PromptTemplatePath)

	return cfg, log, nil
}
