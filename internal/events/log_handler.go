package events

import (
	"context"
	"encoding/json"
	"log/slog"
)

// LogHandler writes one audit line per event.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger.With("component", "audit")}
}

// HandleEvent implements Handler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	var fields map[string]any
	if err := json.Unmarshal(event.Payload, &fields); err != nil {
		return err
	}

	attrs := make([]any, 0, 2*len(fields)+4)
	attrs = append(attrs, "event_id", event.ID.String(), "event_type", event.Type)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	h.logger.InfoContext(ctx, "task event", attrs...)
	return nil
}
