package diagnostics

import (
	"context"
	"errors"
	"sync"

	"github.com/deepkick/climlab/internal/domain"
	"github.com/deepkick/climlab/pkg/activity"
	"github.com/deepkick/climlab/pkg/events"
)

// CapturingEventSink captures all emitted events for test assertions.
// Duplicate idempotency keys are dropped like a real sink would.
type CapturingEventSink struct {
	mu           sync.RWMutex
	events       []events.Envelope
	seenKeys     map[string]bool
	failuresLeft int
}

// NewCapturingEventSink creates a new capturing event sink for testing.
func NewCapturingEventSink() *CapturingEventSink {
	return &CapturingEventSink{seenKeys: make(map[string]bool)}
}

// NewFailingEventSink creates a sink that fails n times before succeeding.
func NewFailingEventSink(n int) *CapturingEventSink {
	s := NewCapturingEventSink()
	s.failuresLeft = n
	return s
}

// Append implements events.EventSink.
func (c *CapturingEventSink) Append(_ context.Context, envelope events.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failuresLeft > 0 {
		c.failuresLeft--
		return errors.New("simulated event sink failure")
	}
	if c.seenKeys[envelope.IdempotencyKey] {
		return nil
	}
	c.events = append(c.events, envelope)
	c.seenKeys[envelope.IdempotencyKey] = true
	return nil
}

// GetEvents returns all captured events.
func (c *CapturingEventSink) GetEvents() []events.Envelope {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]events.Envelope, len(c.events))
	copy(result, c.events)
	return result
}

// CreateTestActivities builds activities over the given sink, or none.
func CreateTestActivities(sink events.EventSink) *Activities {
	return NewActivities(activity.NewBaseActivities(sink))
}

// latitudeSpec is a rank-1 field over a latitude axis.
func latitudeSpec(name string, values, lat []float64) domain.FieldSpec {
	return domain.FieldSpec{
		Name:   name,
		Values: values,
		Shape:  []int{len(values)},
		Axes:   []domain.AxisSpec{{Type: domain.AxisLat, Points: lat}},
	}
}

// surfaceSpec is a vector of values for a (lat, depth) grid of shape (n, 1).
func surfaceSpec(name string, values, lat []float64) domain.FieldSpec {
	return domain.FieldSpec{
		Name:   name,
		Values: values,
		Shape:  []int{len(values)},
		Axes: []domain.AxisSpec{
			{Type: domain.AxisLat, Points: lat},
			{Type: domain.AxisDepth, Points: []float64{5}},
		},
	}
}

func globalMeanInput(spec domain.FieldSpec) domain.GlobalMeanInput {
	return domain.GlobalMeanInput{Field: spec, ClientIdempotencyKey: "test-key"}
}
