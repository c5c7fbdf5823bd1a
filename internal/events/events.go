package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Generation lifecycle event types emitted by the motivation service.
const (
	// EventCacheHit is emitted when a generation request is served from cache.
	EventCacheHit = "motivation.cache_hit"

	// EventRetryAttempt is emitted before each transport retry attempt.
	EventRetryAttempt = "motivation.retry_attempt"

	// EventModelFallback is emitted when the request is escalated from the
	// primary model to the fallback model.
	EventModelFallback = "motivation.model_fallback"

	// EventParseFallback is emitted when the response parser had to salvage
	// JSON from markdown fencing or a brace-delimited substring.
	EventParseFallback = "motivation.parse_fallback"
)

// GenerationEvent records one step of the generation lifecycle. It contains
// the necessary information for observability without direct dependencies on
// the motivation package.
type GenerationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Event* constants above
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *GenerationEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewGenerationEvent creates a new GenerationEvent with the specified type
// and payload.
func NewGenerationEvent(eventType string, payload interface{}) (*GenerationEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &GenerationEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *GenerationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *GenerationEvent) error
}
