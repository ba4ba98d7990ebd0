package workflow

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/deepkick/climlab/internal/diagnostics"
	"github.com/deepkick/climlab/internal/domain"
)

// Error types returned by GlobalMeanWorkflow.
const (
	ErrorTypeValidation      = "Validation"
	ErrorTypeAllFieldsFailed = "AllFieldsFailed"
)

// GlobalMeanWorkflow computes the global mean of every field in the request.
//
// Fields are averaged concurrently by the GlobalMean activity. A field that
// fails is reported in FailedFields and does not fail the workflow; the
// workflow fails only when no field could be averaged.
func GlobalMeanWorkflow(
	ctx workflow.Context,
	req domain.DiagnosticsRequest,
) (*domain.DiagnosticsReport, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "global_mean.v", workflow.DefaultVersion, currentVersion)

	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid diagnostics request",
			ErrorTypeValidation,
			err,
		)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Duration(req.TimeoutSeconds) * time.Second,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	var a *diagnostics.Activities
	futures := make([]workflow.Future, len(req.Fields))
	for i, spec := range req.Fields {
		futures[i] = workflow.ExecuteActivity(ctx, a.GlobalMean, domain.GlobalMeanInput{
			Field:                spec,
			ClientIdempotencyKey: req.FieldKey(spec.Name),
		})
	}

	report := &domain.DiagnosticsReport{
		Means:   make(map[string]float64, len(req.Fields)),
		Outputs: make([]domain.GlobalMeanOutput, 0, len(req.Fields)),
	}
	for i, f := range futures {
		name := req.Fields[i].Name

		var out domain.GlobalMeanOutput
		if err := f.Get(ctx, &out); err != nil {
			logger.Warn("GlobalMean failed", "field", name, "error", err)
			if report.FailedFields == nil {
				report.FailedFields = make(map[string]string)
			}
			report.FailedFields[name] = failureMessage(err)
			continue
		}
		report.Means[name] = out.Mean
		report.Outputs = append(report.Outputs, out)
	}

	if len(report.Outputs) == 0 {
		return nil, temporal.NewNonRetryableApplicationError(
			"no field could be averaged",
			ErrorTypeAllFieldsFailed,
			nil,
			report.FailedFields,
		)
	}

	logger.Info("GlobalMeanWorkflow completed",
		"fields", len(req.Fields),
		"failed", len(report.FailedFields))
	return report, nil
}

// failureMessage strips the activity envelope from an activity failure.
func failureMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
