// Package events provides the generic event infrastructure for diagnostic
// event emission. It defines the Envelope carried to downstream consumers,
// the EventSink interface, and sink implementations.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps domain events with consistent metadata for routing,
// deduplication and correlation with the workflow execution that produced them.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing,
	// e.g. "GlobalMeanComputed".
	Type string `json:"type"`

	// Source identifies the component that emitted this event,
	// e.g. "activity.global_mean".
	Source string `json:"source"`

	// Version is the payload schema version in semantic-version form.
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey is stable across retries of the same logical event.
	IdempotencyKey string `json:"idempotency_key"`

	// TenantID identifies the tenant for multi-tenant filtering.
	TenantID string `json:"tenant_id"`

	// WorkflowID identifies the Temporal workflow that triggered this event.
	WorkflowID string `json:"workflow_id"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id"`

	// Payload contains the event data as JSON. Schema varies by Type and Version.
	Payload json.RawMessage `json:"payload"`
}

// EventSink receives events from activities.
//
// Sinks should treat a repeated IdempotencyKey as a no-op. Emission is
// best-effort: callers log Append failures and carry on.
type EventSink interface {
	// Append adds an event to the sink.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards every event.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil
}

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
