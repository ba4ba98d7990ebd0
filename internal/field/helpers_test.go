package field

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepkick/climlab/internal/ndarray"
)

// stubDomain is a minimal Domain with a fixed shape and named axes.
type stubDomain struct {
	shape []int
	axes  map[string][]float64
}

func newStubDomain(shape ...int) *stubDomain {
	return &stubDomain{shape: shape, axes: map[string][]float64{}}
}

func (s *stubDomain) withAxis(name string, points ...float64) *stubDomain {
	s.axes[name] = points
	return s
}

func (s *stubDomain) Shape() []int { return slices.Clone(s.shape) }

func (s *stubDomain) Points(axis string) ([]float64, bool) {
	p, ok := s.axes[axis]
	return p, ok
}

// latitudeDomain returns a one-axis latitude grid.
func latitudeDomain(points ...float64) *stubDomain {
	return newStubDomain(len(points)).withAxis(LatitudeAxis, points...)
}

func mustArray(t testing.TB, data []float64, shape ...int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.New(data, shape...)
	require.NoError(t, err)
	return a
}

func mustField(t testing.TB, a *ndarray.Array, d Domain) *Field {
	t.Helper()
	f, err := New(a, d)
	require.NoError(t, err)
	return f
}

// sequence returns 0, 1, ..., n-1.
func sequence(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i)
	}
	return s
}
