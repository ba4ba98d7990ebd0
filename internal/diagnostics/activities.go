// Package diagnostics implements Temporal activities that compute spatial
// diagnostics of climate fields. A field arrives as a domain.FieldSpec, is
// rebuilt into a field.Field over its grid, reduced, and reported through a
// best-effort event.
package diagnostics

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/deepkick/climlab/internal/domain"
	"github.com/deepkick/climlab/internal/field"
	"github.com/deepkick/climlab/internal/ndarray"
	"github.com/deepkick/climlab/pkg/activity"
)

// Activities handles diagnostics-specific Temporal activities.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates diagnostics activities with the provided dependencies.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// GlobalMean computes the cos-latitude weighted mean of one field.
//
// The values are reconciled with the grid exactly as field.New does, so a
// vector supplied for an (n, 1) grid is transposed and Transposed is set in
// the output. ShapeMismatch, NoLatitudeAxis and Broadcast failures are
// non-retryable application errors of the same type.
func (a *Activities) GlobalMean(
	ctx context.Context,
	input domain.GlobalMeanInput,
) (*domain.GlobalMeanOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable(ErrorTypeValidation, err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting GlobalMean activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"field", input.Field.Name,
		"shape", input.Field.Shape)

	f, transposed, err := buildField(input.Field)
	if err != nil {
		return nil, classify(err)
	}

	a.RecordHeartbeat(ctx, "reconciled", f.Shape())

	weights, err := field.LatitudeWeights(f)
	if err != nil {
		return nil, classify(err)
	}
	mean, err := field.GlobalMean(f)
	if err != nil {
		return nil, classify(err)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, classify(fmt.Errorf("%w: field %q", ErrNonFiniteMean, input.Field.Name))
	}

	output := &domain.GlobalMeanOutput{
		Name:       input.Field.Name,
		Mean:       mean,
		Shape:      f.Shape(),
		Transposed: transposed,
		WeightSum:  weights.Sum(),
	}
	if err := output.Validate(); err != nil {
		return nil, nonRetryable(ErrorTypeValidation, err, "invalid output")
	}

	a.events.EmitGlobalMeanComputed(ctx, output, wfCtx, input.ClientIdempotencyKey)

	activity.SafeLog(ctx, "GlobalMean completed",
		"field", output.Name,
		"mean", output.Mean,
		"transposed", output.Transposed)

	return output, nil
}

// buildField rebuilds a Field from its wire form and reports whether the
// values were transposed to match the grid.
func buildField(spec domain.FieldSpec) (*field.Field, bool, error) {
	grid, err := spec.BuildDomain()
	if err != nil {
		return nil, false, err
	}

	values, err := ndarray.New(spec.Values, spec.Shape...)
	if err != nil {
		return nil, false, fmt.Errorf("field %q: %w", spec.Name, err)
	}

	// A nil *domain.Domain must reach field.New as a nil interface.
	var d field.Domain
	if grid != nil {
		d = grid
	}

	f, err := field.New(values, d)
	if err != nil {
		return nil, false, fmt.Errorf("field %q: %w", spec.Name, err)
	}
	return f, !slices.Equal(values.AtLeast1D().Shape(), f.Shape()), nil
}
