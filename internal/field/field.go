// Package field implements Field, a numeric array tagged with the spatial
// grid ("domain") it is defined over, and reductions that need that grid.
//
// A Field behaves like its underlying ndarray.Array: slicing, arithmetic,
// templated creation and reductions are available as methods. Each method
// that yields an array builds a new Field carrying the receiver's domain
// reference forward. The shape-equals-domain invariant is enforced only by
// New; derived Fields are never re-validated, so a rank-reducing slice keeps
// the full domain of its parent.
package field

import (
	"fmt"
	"slices"

	"github.com/deepkick/climlab/internal/ndarray"
)

// LatitudeAxis is the axis name GlobalMean looks up in a Field's domain.
const LatitudeAxis = "lat"

// Domain is the grid a Field is defined over.
// Implementations are shared read-only between Fields and are never mutated
// by this package.
type Domain interface {
	// Shape returns the per-axis lengths of the grid.
	Shape() []int
	// Points returns the coordinate values of the named axis and whether
	// the axis exists.
	Points(axis string) ([]float64, bool)
}

// Field is an immutable numeric array plus a reference to its Domain.
// The zero value is not usable; construct Fields with New, FromSlice or Wrap.
type Field struct {
	values *ndarray.Array
	domain Domain
}

// New attaches d to input after reconciling their shapes.
//
// The input is promoted to rank 1 or higher. A nil domain is attached without
// any check. Otherwise the shapes must be equal; failing that, the input is
// promoted to rank 2 or higher and transposed, and the transposed array is
// kept if it matches. Any other combination fails with ErrShapeMismatch.
func New(input *ndarray.Array, d Domain) (*Field, error) {
	values := input.AtLeast1D()
	if d == nil {
		return &Field{values: values}, nil
	}

	want := d.Shape()
	if slices.Equal(values.Shape(), want) {
		return &Field{values: values, domain: d}, nil
	}

	if transposed := values.AtLeast2D().Transpose(); slices.Equal(transposed.Shape(), want) {
		return &Field{values: transposed, domain: d}, nil
	}

	return nil, fmt.Errorf("%w: array %v, domain %v", ErrShapeMismatch, values.Shape(), want)
}

// FromSlice builds a rank-1 array from data and attaches d with New.
func FromSlice(data []float64, d Domain) (*Field, error) {
	return New(ndarray.FromSlice(data), d)
}

// Wrap turns a plain array into a Field with no domain.
func Wrap(a *ndarray.Array) *Field {
	return &Field{values: a.AtLeast1D()}
}

// derive wraps a result computed from f, carrying f's domain forward
// without checking its shape.
func (f *Field) derive(a *ndarray.Array) *Field {
	return &Field{values: a, domain: f.domain}
}

// Domain returns the attached domain, or nil.
func (f *Field) Domain() Domain { return f.domain }

// Values returns the underlying array.
func (f *Field) Values() *ndarray.Array { return f.values }

// Shape returns the array shape, which may differ from Domain().Shape()
// for derived Fields.
func (f *Field) Shape() []int { return f.values.Shape() }

// Ndim returns the array rank.
func (f *Field) Ndim() int { return f.values.Ndim() }

// Size returns the number of elements.
func (f *Field) Size() int { return f.values.Size() }

// Data returns a copy of the values in row-major order.
func (f *Field) Data() []float64 { return f.values.Data() }

// At returns a single element.
func (f *Field) At(idx ...int) (float64, error) { return f.values.At(idx...) }

// String formats the values and the domain shape.
func (f *Field) String() string {
	if f.domain == nil {
		return fmt.Sprintf("Field%v <no domain>", f.values)
	}
	return fmt.Sprintf("Field%v <domain %v>", f.values, f.domain.Shape())
}

// Slice returns rows [start, stop) along axis 0.
func (f *Field) Slice(start, stop int) (*Field, error) {
	a, err := f.values.Slice(start, stop)
	if err != nil {
		return nil, fmt.Errorf("slice field: %w", err)
	}
	return f.derive(a), nil
}

// Index returns row i along axis 0 with that axis removed.
func (f *Field) Index(i int) (*Field, error) {
	a, err := f.values.Index(i)
	if err != nil {
		return nil, fmt.Errorf("index field: %w", err)
	}
	return f.derive(a), nil
}

// Squeeze removes every axis of length 1.
func (f *Field) Squeeze() *Field { return f.derive(f.values.Squeeze()) }

// Transpose reverses the axes.
func (f *Field) Transpose() *Field { return f.derive(f.values.Transpose()) }

// Reshape returns the values under a new shape of equal size.
func (f *Field) Reshape(shape ...int) (*Field, error) {
	a, err := f.values.Reshape(shape...)
	if err != nil {
		return nil, fmt.Errorf("reshape field: %w", err)
	}
	return f.derive(a), nil
}

// Copy returns a Field with copied values and the same domain reference.
func (f *Field) Copy() *Field { return f.derive(f.values.Copy()) }

// ZerosLike returns a zero-filled Field with f's shape and domain.
func (f *Field) ZerosLike() *Field { return f.derive(f.values.ZerosLike()) }

// FullLike returns a Field with f's shape and domain filled with v.
func (f *Field) FullLike(v float64) *Field { return f.derive(f.values.FullLike(v)) }

// Add returns f + other under broadcasting, carrying f's domain.
func (f *Field) Add(other *Field) (*Field, error) {
	return f.combine("add", other, (*ndarray.Array).Add)
}

// Sub returns f - other under broadcasting, carrying f's domain.
func (f *Field) Sub(other *Field) (*Field, error) {
	return f.combine("subtract", other, (*ndarray.Array).Sub)
}

// Mul returns f * other under broadcasting, carrying f's domain.
func (f *Field) Mul(other *Field) (*Field, error) {
	return f.combine("multiply", other, (*ndarray.Array).Mul)
}

// Div returns f / other under broadcasting, carrying f's domain.
func (f *Field) Div(other *Field) (*Field, error) {
	return f.combine("divide", other, (*ndarray.Array).Div)
}

func (f *Field) combine(
	name string,
	other *Field,
	op func(a, b *ndarray.Array) (*ndarray.Array, error),
) (*Field, error) {
	a, err := op(f.values, other.values)
	if err != nil {
		return nil, fmt.Errorf("%s fields: %w", name, err)
	}
	return f.derive(a), nil
}

// Scale multiplies every element by k.
func (f *Field) Scale(k float64) *Field { return f.derive(f.values.Scale(k)) }

// AddConst adds k to every element.
func (f *Field) AddConst(k float64) *Field { return f.derive(f.values.AddConst(k)) }

// Map applies fn to every element.
func (f *Field) Map(fn func(float64) float64) *Field { return f.derive(f.values.Map(fn)) }

// Cos returns the element-wise cosine.
func (f *Field) Cos() *Field { return f.derive(f.values.Cos()) }

// SumAxis sums along one axis. The result keeps f's domain.
func (f *Field) SumAxis(axis int) (*Field, error) {
	a, err := f.values.SumAxis(axis)
	if err != nil {
		return nil, fmt.Errorf("sum field: %w", err)
	}
	return f.derive(a), nil
}

// Sum returns the sum of all elements.
func (f *Field) Sum() float64 { return f.values.Sum() }

// Mean returns the unweighted mean of all elements.
func (f *Field) Mean() float64 { return f.values.Mean() }
