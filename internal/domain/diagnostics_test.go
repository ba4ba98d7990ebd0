package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFieldSpec(name string) FieldSpec {
	return FieldSpec{
		Name:   name,
		Values: []float64{1, 2, 3},
		Shape:  []int{3},
		Axes:   []AxisSpec{{Type: AxisLat, Points: []float64{-45, 0, 45}}},
	}
}

func TestFieldSpec_BuildDomain(t *testing.T) {
	t.Run("with axes", func(t *testing.T) {
		d, err := validFieldSpec("Ts").BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Ts", d.Name)
		assert.Equal(t, []int{3}, d.Shape())
	})

	t.Run("without axes", func(t *testing.T) {
		spec := validFieldSpec("Ts")
		spec.Axes = nil
		d, err := spec.BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("invalid axis", func(t *testing.T) {
		spec := validFieldSpec("Ts")
		spec.Axes = []AxisSpec{{Type: AxisType("time"), Points: []float64{1}}}
		_, err := spec.BuildDomain()
		require.ErrorIs(t, err, ErrInvalidDomain)
		assert.Contains(t, err.Error(), `field "Ts"`)
	})
}

func TestGlobalMeanInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalMeanInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(*GlobalMeanInput) {}},
		{name: "missing key", mutate: func(in *GlobalMeanInput) { in.ClientIdempotencyKey = "" }, wantErr: true},
		{name: "missing name", mutate: func(in *GlobalMeanInput) { in.Field.Name = "" }, wantErr: true},
		{name: "empty values", mutate: func(in *GlobalMeanInput) { in.Field.Values = nil }, wantErr: true},
		{name: "zero dimension", mutate: func(in *GlobalMeanInput) { in.Field.Shape = []int{0} }, wantErr: true},
		{name: "bad axis type", mutate: func(in *GlobalMeanInput) { in.Field.Axes[0].Type = "x" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := GlobalMeanInput{Field: validFieldSpec("Ts"), ClientIdempotencyKey: "key"}
			tt.mutate(&in)
			if tt.wantErr {
				assert.Error(t, in.Validate())
			} else {
				assert.NoError(t, in.Validate())
			}
		})
	}
}

func TestDiagnosticsRequest_Validate(t *testing.T) {
	req := DiagnosticsRequest{
		Fields:               []FieldSpec{validFieldSpec("Ts"), validFieldSpec("Tatm")},
		TimeoutSeconds:       30,
		ClientIdempotencyKey: "batch-1",
	}
	require.NoError(t, req.Validate())

	dup := req
	dup.Fields = []FieldSpec{validFieldSpec("Ts"), validFieldSpec("Ts")}
	assert.Error(t, dup.Validate(), "field names must be unique")

	noTimeout := req
	noTimeout.TimeoutSeconds = 0
	assert.Error(t, noTimeout.Validate())

	empty := req
	empty.Fields = nil
	assert.Error(t, empty.Validate())
}

func TestDiagnosticsRequest_FieldKey(t *testing.T) {
	req := DiagnosticsRequest{ClientIdempotencyKey: "batch-1"}
	assert.Equal(t, req.FieldKey("Ts"), req.FieldKey("Ts"))
	assert.NotEqual(t, req.FieldKey("Ts"), req.FieldKey("Tatm"))
	assert.Len(t, req.FieldKey("Ts"), 64)
}

func TestNewGlobalMeanComputedEvent(t *testing.T) {
	tenant := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	output := &GlobalMeanOutput{Name: "Ts", Mean: 14.5, Shape: []int{90, 1}, Transposed: true, WeightSum: 57.3}

	ev, err := NewGlobalMeanComputedEvent(tenant, "wf-1", "run-1", output, "key-1")
	require.NoError(t, err)

	assert.Equal(t, EventTypeGlobalMeanComputed, ev.EventType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, "activity.global_mean", ev.Producer)
	assert.Equal(t, GlobalMeanComputedIdempotencyKey("key-1", "Ts"), ev.IdempotencyKey)

	var payload GlobalMeanComputedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "Ts", payload.FieldName)
	assert.Equal(t, 14.5, payload.Mean)
	assert.True(t, payload.Transposed)

	again, err := NewGlobalMeanComputedEvent(tenant, "wf-1", "run-2", output, "key-1")
	require.NoError(t, err)
	assert.Equal(t, ev.IdempotencyKey, again.IdempotencyKey, "retries must reuse the key")
}

func TestNewGlobalMeanComputedEvent_Invalid(t *testing.T) {
	tenant := uuid.New()

	_, err := NewGlobalMeanComputedEvent(tenant, "wf-1", "run-1", &GlobalMeanOutput{Shape: []int{1}}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid global mean payload")

	_, err = NewGlobalMeanComputedEvent(tenant, "", "run-1", &GlobalMeanOutput{Name: "Ts", Shape: []int{1}}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid event envelope")
}
