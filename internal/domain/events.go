package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event emitted by the system.
type EventType string

const (
	// EventTypeGlobalMeanComputed is emitted when the global mean of a field
	// has been computed. One event per field.
	EventTypeGlobalMeanComputed EventType = "GlobalMeanComputed"
)

// EventEnvelope wraps all events with consistent metadata for projection processing.
// Provides workflow context and idempotency so that retries and replays
// produce the same logical event.
type EventEnvelope struct {
	// IdempotencyKey ensures events are processed exactly once during retries.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	// EventType identifies the specific type of event for routing and processing.
	EventType EventType `json:"event_type" validate:"required"`

	// Version enables event schema evolution and backward compatibility.
	Version int `json:"version" validate:"required,min=1"`

	// OccurredAt records when the event occurred in the system.
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	// TenantID identifies the tenant for multi-tenant event filtering.
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`

	// WorkflowID identifies the Temporal workflow that generated this event.
	WorkflowID string `json:"workflow_id" validate:"required"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id" validate:"required"`

	// Payload contains the event-specific data as JSON.
	Payload json.RawMessage `json:"payload" validate:"required"`

	// Producer identifies the component that emitted this event.
	Producer string `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error {
	return validate.Struct(e)
}

// GlobalMeanComputedPayload contains the data for GlobalMeanComputed events.
type GlobalMeanComputedPayload struct {
	FieldName  string  `json:"field_name" validate:"required"`
	Mean       float64 `json:"mean"`
	Shape      []int   `json:"shape" validate:"required,min=1"`
	Transposed bool    `json:"transposed"`
}

// Validate checks if the payload meets all requirements.
func (p *GlobalMeanComputedPayload) Validate() error {
	return validate.Struct(p)
}

// GenerateIdempotencyKey creates a deterministic key for event deduplication:
// hex(sha256(clientIdempotencyKey || eventSuffix)).
func GenerateIdempotencyKey(clientIdempotencyKey, eventSuffix string) string {
	hasher := sha256.New()
	hasher.Write([]byte(clientIdempotencyKey + eventSuffix))
	return hex.EncodeToString(hasher.Sum(nil))
}

// GlobalMeanComputedIdempotencyKey generates the idempotency key for a
// field's GlobalMeanComputed event.
func GlobalMeanComputedIdempotencyKey(clientIdempotencyKey, fieldName string) string {
	return GenerateIdempotencyKey(clientIdempotencyKey, ":global_mean:"+fieldName)
}

// NewGlobalMeanComputedEvent creates a GlobalMeanComputed event envelope.
func NewGlobalMeanComputedEvent(
	tenantID uuid.UUID,
	workflowID, runID string,
	output *GlobalMeanOutput,
	clientIdempotencyKey string,
) (EventEnvelope, error) {
	payload := GlobalMeanComputedPayload{
		FieldName:  output.Name,
		Mean:       output.Mean,
		Shape:      output.Shape,
		Transposed: output.Transposed,
	}
	if err := payload.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid global mean payload: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	envelope := EventEnvelope{
		IdempotencyKey: GlobalMeanComputedIdempotencyKey(clientIdempotencyKey, output.Name),
		EventType:      EventTypeGlobalMeanComputed,
		Version:        1,
		OccurredAt:     time.Now(),
		TenantID:       tenantID,
		WorkflowID:     workflowID,
		RunID:          runID,
		Payload:        payloadJSON,
		Producer:       "activity.global_mean",
	}

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return envelope, nil
}
