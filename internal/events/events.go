package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeTaskCreated    = "task.created"
	TypeQueryCompleted = "query.completed"
)

// Event describes something that happened to the task collection.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreated is the payload of a TypeTaskCreated event.
type TaskCreated struct {
	TaskID     string `json:"task_id"`
	Status     string `json:"status"`
	HasDueDate bool   `json:"has_due_date"`
	TaskCount  int    `json:"task_count"`
}

// QueryCompleted is the payload of a TypeQueryCompleted event.
// Outcome is "ok" or the kind of the error that ended the query.
type QueryCompleted struct {
	QueryLength int    `json:"query_length"`
	Candidates  int    `json:"candidates"`
	Matches     int    `json:"matches"`
	Outcome     string `json:"outcome"`
	DurationMS  int64  `json:"duration_ms"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the given type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Handler processes events.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter publishes events to handlers.
type Emitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}

// Discard is an Emitter that drops every event.
var Discard Emitter = discard{}

type discard struct{}

func (discard) EmitEvent(context.Context, *Event) error { return nil }
