// Package worker exposes helpers to register workflows/activities with a Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/deepkick/climlab/internal/diagnostics"
	"github.com/deepkick/climlab/internal/workflow"
	"github.com/deepkick/climlab/pkg/activity"
	"github.com/deepkick/climlab/pkg/events"
)

// Registrar is the subset of a Temporal worker used for registration.
type Registrar interface {
	RegisterWorkflow(w any)
	RegisterActivity(a any)
}

var _ Registrar = sdkworker.Worker(nil)

// RegisterAll registers all workflows and activities with the Temporal worker.
// It must be called once during worker initialization, before the worker
// starts. A nil sink discards events.
func RegisterAll(w Registrar, sink events.EventSink) {
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	base := activity.NewBaseActivities(sink)

	diagnosticsActivities := diagnostics.NewActivities(base)

	w.RegisterWorkflow(workflow.GlobalMeanWorkflow)
	w.RegisterActivity(diagnosticsActivities.GlobalMean)
}
