// Package ndarray provides an immutable row-major n-dimensional float64 array.
// It is the numeric engine underneath field.Field: rank promotion, transpose,
// positional slicing, broadcasting arithmetic and reductions follow numpy
// semantics so that code ported from array-oriented models behaves the same.
//
// Every operation returns a new Array and never mutates its receiver, which
// makes an Array safe for concurrent reads. Operations that only reinterpret
// the shape (Squeeze, Reshape, rank promotion) share the backing values.
package ndarray

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Array is an immutable n-dimensional array of float64 values.
// A zero-length shape denotes a rank-0 array holding a single value.
type Array struct {
	data  []float64
	shape []int
}

// New creates an array with the given values and shape.
// The values are copied. It returns ErrInvalidShape when a dimension is
// negative or when len(data) differs from the product of shape.
func New(data []float64, shape ...int) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrInvalidShape, len(data), shape)
	}
	return &Array{data: slices.Clone(data), shape: slices.Clone(shape)}, nil
}

// FromSlice creates a rank-1 array holding a copy of data.
func FromSlice(data []float64) *Array {
	return &Array{data: slices.Clone(data), shape: []int{len(data)}}
}

// Scalar creates a rank-0 array holding v.
func Scalar(v float64) *Array {
	return &Array{data: []float64{v}}
}

// Zeros creates a zero-filled array. It panics if a dimension is negative.
func Zeros(shape ...int) *Array {
	return Full(0, shape...)
}

// Full creates an array with every element set to v.
// It panics if a dimension is negative.
func Full(v float64, shape ...int) *Array {
	n, err := shapeSize(shape)
	if err != nil {
		panic(err)
	}
	data := make([]float64, n)
	if v != 0 {
		for i := range data {
			data[i] = v
		}
	}
	return &Array{data: data, shape: slices.Clone(shape)}
}

// Shape returns a copy of the per-axis lengths.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the rank of the array.
func (a *Array) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.data) }

// Data returns a copy of the values in row-major order.
func (a *Array) Data() []float64 { return slices.Clone(a.data) }

// At returns the element at the given multi-index. Negative indices count
// from the end of their axis.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrIndexOutOfRange, len(idx), len(a.shape))
	}
	st := strides(a.shape)
	off := 0
	for k, i := range idx {
		n := a.shape[k]
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("%w: index %d for axis %d with size %d", ErrIndexOutOfRange, idx[k], k, n)
		}
		off += i * st[k]
	}
	return a.data[off], nil
}

// String formats the array as its shape followed by its values.
func (a *Array) String() string { return fmt.Sprintf("%v%v", a.shape, a.data) }

// AtLeast1D promotes a rank-0 array to shape (1).
func (a *Array) AtLeast1D() *Array {
	if len(a.shape) >= 1 {
		return a
	}
	return &Array{data: a.data, shape: []int{1}}
}

// AtLeast2D promotes a rank-0 array to shape (1, 1) and a rank-1 array of
// length n to shape (1, n).
func (a *Array) AtLeast2D() *Array {
	switch len(a.shape) {
	case 0:
		return &Array{data: a.data, shape: []int{1, 1}}
	case 1:
		return &Array{data: a.data, shape: []int{1, a.shape[0]}}
	default:
		return a
	}
}

// Transpose reverses the order of the axes. Arrays of rank below 2 are
// returned unchanged.
func (a *Array) Transpose() *Array {
	nd := len(a.shape)
	if nd < 2 {
		return a
	}

	src := strides(a.shape)
	shape := make([]int, nd)
	step := make([]int, nd)
	for i := 0; i < nd; i++ {
		shape[i] = a.shape[nd-1-i]
		step[i] = src[nd-1-i]
	}

	out := make([]float64, len(a.data))
	idx := make([]int, nd)
	for i := range out {
		off := 0
		for k := range idx {
			off += idx[k] * step[k]
		}
		out[i] = a.data[off]
		increment(idx, shape)
	}
	return &Array{data: out, shape: shape}
}

// Reshape returns the same values under a new shape of equal size.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	if n != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrInvalidShape, a.shape, shape)
	}
	return &Array{data: a.data, shape: slices.Clone(shape)}, nil
}

// Squeeze removes every axis of length 1.
func (a *Array) Squeeze() *Array {
	shape := make([]int, 0, len(a.shape))
	for _, n := range a.shape {
		if n != 1 {
			shape = append(shape, n)
		}
	}
	return &Array{data: a.data, shape: shape}
}

// Slice returns rows [start, stop) along axis 0. Bounds follow Go-slice
// positions with Python conventions: negative values count from the end and
// out-of-range bounds are clamped, so the result may be empty.
func (a *Array) Slice(start, stop int) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, fmt.Errorf("%w: cannot slice a rank-0 array", ErrIndexOutOfRange)
	}
	n := a.shape[0]
	start = clampBound(start, n)
	stop = clampBound(stop, n)
	if stop < start {
		stop = start
	}

	row := product(a.shape[1:])
	shape := slices.Clone(a.shape)
	shape[0] = stop - start
	return &Array{data: slices.Clone(a.data[start*row : stop*row]), shape: shape}, nil
}

// Index returns row i along axis 0, removing that axis.
// Negative indices count from the end.
func (a *Array) Index(i int) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, fmt.Errorf("%w: cannot index a rank-0 array", ErrIndexOutOfRange)
	}
	n := a.shape[0]
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return nil, fmt.Errorf("%w: index %d for axis 0 with size %d", ErrIndexOutOfRange, i, n)
	}

	row := product(a.shape[1:])
	return &Array{data: slices.Clone(a.data[j*row : (j+1)*row]), shape: slices.Clone(a.shape[1:])}, nil
}

// ZerosLike returns a zero-filled array with the receiver's shape.
func (a *Array) ZerosLike() *Array { return Zeros(a.shape...) }

// FullLike returns an array with the receiver's shape filled with v.
func (a *Array) FullLike(v float64) *Array { return Full(v, a.shape...) }

// Copy returns a deep copy.
func (a *Array) Copy() *Array {
	return &Array{data: slices.Clone(a.data), shape: slices.Clone(a.shape)}
}

// Equal reports whether both arrays have the same shape and identical values.
func (a *Array) Equal(b *Array) bool {
	return slices.Equal(a.shape, b.shape) && floats.Equal(a.data, b.data)
}

// EqualApprox reports whether both arrays have the same shape and values
// equal within tol, absolute or relative.
func (a *Array) EqualApprox(b *Array, tol float64) bool {
	return slices.Equal(a.shape, b.shape) && floats.EqualApprox(a.data, b.data, tol)
}

func shapeSize(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrInvalidShape, shape)
		}
		n *= d
	}
	return n, nil
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// strides returns row-major element strides for shape.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// increment advances a row-major multi-index by one position.
func increment(idx, shape []int) {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < shape[k] {
			return
		}
		idx[k] = 0
	}
}

func clampBound(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}
