package diagnostics

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/deepkick/climlab/internal/domain"
	"github.com/deepkick/climlab/internal/field"
	"github.com/deepkick/climlab/internal/ndarray"
)

// ErrNonFiniteMean indicates that a global mean evaluated to NaN or ±Inf,
// which cannot be carried in a workflow payload.
var ErrNonFiniteMean = errors.New("global mean is not finite")

// Application error types reported to workflows. None of them is retryable:
// the same input always fails the same way.
const (
	ErrorTypeValidation     = "Validation"
	ErrorTypeShapeMismatch  = "ShapeMismatch"
	ErrorTypeNoLatitudeAxis = "NoLatitudeAxis"
	ErrorTypeBroadcast      = "Broadcast"
	ErrorTypeNonFinite      = "NonFiniteMean"
)

// classify maps a field or grid error onto a non-retryable application error.
// The message of known kinds is the sentinel text so that callers matching on
// it see exactly "input_array and domain have different shapes" or
// "No latitude axis in input field".
func classify(err error) error {
	switch {
	case errors.Is(err, field.ErrShapeMismatch):
		return nonRetryable(ErrorTypeShapeMismatch, err, field.ErrShapeMismatch.Error())
	case errors.Is(err, field.ErrNoLatitudeAxis):
		return nonRetryable(ErrorTypeNoLatitudeAxis, err, field.ErrNoLatitudeAxis.Error())
	case errors.Is(err, ndarray.ErrBroadcast):
		return nonRetryable(ErrorTypeBroadcast, err, ndarray.ErrBroadcast.Error())
	case errors.Is(err, ErrNonFiniteMean):
		return nonRetryable(ErrorTypeNonFinite, err, ErrNonFiniteMean.Error())
	case errors.Is(err, ndarray.ErrInvalidShape),
		errors.Is(err, domain.ErrInvalidDomain),
		errors.Is(err, domain.ErrDuplicateAxis):
		return nonRetryable(ErrorTypeValidation, err, "invalid field")
	default:
		return err
	}
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
