package domain

import "fmt"

// AxisSpec is the serialised form of an Axis in activity payloads.
type AxisSpec struct {
	// Type is the axis dimension: lev, lat, lon or depth.
	Type AxisType `json:"type" validate:"required,oneof=lev lat lon depth"`

	// Points are the coordinate values in the default units of Type.
	Points []float64 `json:"points" validate:"required,min=1"`
}

// FieldSpec is a field shipped across the workflow boundary: flat row-major
// values, their shape, and the axes of the grid they are defined over.
// A FieldSpec without axes describes a field with no domain.
type FieldSpec struct {
	// Name identifies the field within a request, e.g. "Ts".
	Name string `json:"name" validate:"required"`

	// Values are the field contents in row-major order.
	Values []float64 `json:"values" validate:"required,min=1"`

	// Shape is the array shape of Values.
	Shape []int `json:"shape" validate:"required,min=1,dive,min=1"`

	// Axes describe the grid, in axis order.
	Axes []AxisSpec `json:"axes,omitempty" validate:"omitempty,dive"`
}

// BuildDomain constructs the grid described by Axes.
// It returns a nil Domain when s has no axes.
func (s FieldSpec) BuildDomain() (*Domain, error) {
	if len(s.Axes) == 0 {
		return nil, nil
	}
	axes := make([]*Axis, 0, len(s.Axes))
	for _, spec := range s.Axes {
		a, err := NewAxis(spec.Type, spec.Points)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", s.Name, err)
		}
		axes = append(axes, a)
	}
	return New(s.Name, axes...)
}

// GlobalMeanInput represents the input for the GlobalMean activity.
type GlobalMeanInput struct {
	// Field is the field to average.
	Field FieldSpec `json:"field" validate:"required"`

	// ClientIdempotencyKey enables deterministic event generation.
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks if the input meets the operation contract.
func (g *GlobalMeanInput) Validate() error { return validate.Struct(g) }

// GlobalMeanOutput represents the result of the GlobalMean activity.
type GlobalMeanOutput struct {
	// Name echoes FieldSpec.Name.
	Name string `json:"name" validate:"required"`

	// Mean is the cos-latitude weighted mean of the field.
	Mean float64 `json:"mean"`

	// Shape is the field shape after reconciliation with its domain.
	Shape []int `json:"shape" validate:"required,min=1"`

	// Transposed reports whether the values had to be transposed to match
	// the domain.
	Transposed bool `json:"transposed"`

	// WeightSum is the sum of the cos-latitude weights.
	WeightSum float64 `json:"weight_sum" validate:"min=0"`
}

// Validate checks if the output meets the operation contract.
func (g *GlobalMeanOutput) Validate() error { return validate.Struct(g) }

// DiagnosticsRequest asks the diagnostics workflow to average a batch of fields.
type DiagnosticsRequest struct {
	// Fields to average. Names must be unique.
	Fields []FieldSpec `json:"fields" validate:"required,min=1,unique=Name,dive"`

	// TimeoutSeconds bounds each activity execution.
	TimeoutSeconds int `json:"timeout_seconds" validate:"min=1,max=3600"`

	// ClientIdempotencyKey seeds per-field idempotency keys.
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks if the request meets the workflow contract.
func (r *DiagnosticsRequest) Validate() error { return validate.Struct(r) }

// FieldKey derives the idempotency key of one field of the request.
func (r *DiagnosticsRequest) FieldKey(name string) string {
	return GenerateIdempotencyKey(r.ClientIdempotencyKey, ":field:"+name)
}

// DiagnosticsReport is the result of the diagnostics workflow.
type DiagnosticsReport struct {
	// Means maps field names to their global mean.
	Means map[string]float64 `json:"means"`

	// Outputs holds the full activity output per successful field, in
	// request order.
	Outputs []GlobalMeanOutput `json:"outputs"`

	// FailedFields maps field names to the error that prevented averaging.
	FailedFields map[string]string `json:"failed_fields,omitempty"`
}
