package domain

import (
	"slices"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// cloneFloats copies a coordinate slice to prevent aliasing.
// Returns nil for nil input to maintain consistency.
func cloneFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
