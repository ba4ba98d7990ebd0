// Package activity provides shared infrastructure for Temporal activity
// implementations: workflow context extraction, logging that is safe outside
// an activity context, and best-effort event emission.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/deepkick/climlab/pkg/events"
)

// Event emission retry policy.
const (
	emitAttempts   = 2
	emitRetryDelay = 200 * time.Millisecond
)

// TestTenantID is the tenant reported outside Temporal activity contexts.
const TestTenantID = "550e8400-e29b-41d4-a716-446655440000"

// WorkflowContext identifies the workflow execution an activity runs for.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	TenantID   string
	ActivityID string
}

// BaseActivities is embedded by every activity type.
// A nil event sink disables event emission.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities creates a new BaseActivities instance with the provided event sink.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext returns the execution details of the current activity.
// Outside an activity (plain unit tests) activity.GetInfo panics; in that
// case a fixed workflow and tenant ID and a random run ID are returned.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if r := recover(); r != nil {
				wfCtx = WorkflowContext{
					WorkflowID: TestTenantID,
					RunID:      "test-run-" + uuid.New().String()[:8],
					TenantID:   TestTenantID,
					ActivityID: "test-activity",
				}
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
		wfCtx.TenantID = TestTenantID // TODO: read tenant from workflow memo once requests carry one
	}()

	return wfCtx
}

// EmitEventSafe appends envelope to the event sink, retrying once after a
// short delay. Failures are logged and never returned.
func (b *BaseActivities) EmitEventSafe(
	ctx context.Context,
	envelope events.Envelope,
	description string,
) {
	if b.eventSink == nil {
		return
	}

	var lastErr error
	for attempt := 0; attempt < emitAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(emitRetryDelay):
			case <-ctx.Done():
				SafeLogError(ctx, fmt.Sprintf("Event emission cancelled: %s", description),
					"event_type", envelope.Type)
				return
			}
		}

		if err := b.eventSink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		SafeLog(ctx, fmt.Sprintf("Event emitted: %s", description),
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return
	}

	SafeLogError(ctx, fmt.Sprintf("Failed to emit %s after %d attempts", description, emitAttempts),
		"event_type", envelope.Type,
		"error", lastErr)
}

// RecordHeartbeat records a heartbeat; ignored outside activity contexts.
func (b *BaseActivities) RecordHeartbeat(ctx context.Context, details ...any) {
	RecordHeartbeat(ctx, details...)
}

// SafeLog logs at INFO through the activity logger.
// Outside an activity context the call is a no-op.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() { _ = recover() }()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError logs at ERROR through the activity logger.
// Outside an activity context the call is a no-op.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() { _ = recover() }()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}

// RecordHeartbeat records activity heartbeat with details.
// Outside an activity context the call is a no-op.
func RecordHeartbeat(ctx context.Context, details ...any) {
	defer func() { _ = recover() }()
	activity.RecordHeartbeat(ctx, details...)
}
