package diagnostics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deepkick/climlab/internal/domain"
	"github.com/deepkick/climlab/pkg/activity"
	"github.com/deepkick/climlab/pkg/events"
)

// EventEmitter handles event emission for the diagnostics domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitGlobalMeanComputed emits a GlobalMeanComputed event for one field.
// Event emission is best-effort; failures are logged without affecting the activity.
func (e *EventEmitter) EmitGlobalMeanComputed(
	ctx context.Context,
	output *domain.GlobalMeanOutput,
	wfCtx activity.WorkflowContext,
	clientIdemKey string,
) {
	tenantID, err := parseUUID(wfCtx.TenantID, "tenant")
	if err != nil {
		activity.SafeLogError(ctx, "Failed to parse tenant ID for GlobalMeanComputed event",
			"tenant_id", wfCtx.TenantID,
			"error", err)
		return
	}

	domainEvent, err := domain.NewGlobalMeanComputedEvent(
		tenantID,
		wfCtx.WorkflowID,
		wfCtx.RunID,
		output,
		clientIdemKey,
	)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create GlobalMeanComputed event",
			"field", output.Name,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, convertDomainEventToEnvelope(domainEvent),
		fmt.Sprintf("GlobalMeanComputed[%s]", output.Name))
}

// parseUUID parses a tenant identifier. "default" maps to the test tenant.
func parseUUID(input, context string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(input)
	if err != nil {
		if input == "default" {
			return uuid.MustParse(activity.TestTenantID), nil
		}
		return uuid.Nil, fmt.Errorf("invalid %s UUID '%s': %w", context, input, err)
	}
	return parsed, nil
}

// convertDomainEventToEnvelope maps a domain.EventEnvelope onto the
// transport-level events.Envelope. The idempotency key doubles as the event ID.
func convertDomainEventToEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             domainEvent.IdempotencyKey,
		Type:           string(domainEvent.EventType),
		Source:         domainEvent.Producer,
		Version:        fmt.Sprintf("%d.0.0", domainEvent.Version),
		Timestamp:      domainEvent.OccurredAt,
		IdempotencyKey: domainEvent.IdempotencyKey,
		TenantID:       domainEvent.TenantID.String(),
		WorkflowID:     domainEvent.WorkflowID,
		RunID:          domainEvent.RunID,
		Payload:        domainEvent.Payload,
	}
}
