package ndarray

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Add returns the element-wise sum a + b under broadcasting.
func (a *Array) Add(b *Array) (*Array, error) {
	return a.binary(b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Sub returns the element-wise difference a - b under broadcasting.
func (a *Array) Sub(b *Array) (*Array, error) {
	return a.binary(b, floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Mul returns the element-wise product a * b under broadcasting.
func (a *Array) Mul(b *Array) (*Array, error) {
	return a.binary(b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Div returns the element-wise quotient a / b under broadcasting.
// Division by zero follows IEEE 754.
func (a *Array) Div(b *Array) (*Array, error) {
	return a.binary(b, floats.DivTo, func(x, y float64) float64 { return x / y })
}

// Scale returns every element multiplied by k.
func (a *Array) Scale(k float64) *Array {
	out := slices.Clone(a.data)
	floats.Scale(k, out)
	return &Array{data: out, shape: slices.Clone(a.shape)}
}

// AddConst returns every element increased by k.
func (a *Array) AddConst(k float64) *Array {
	out := slices.Clone(a.data)
	floats.AddConst(k, out)
	return &Array{data: out, shape: slices.Clone(a.shape)}
}

// Map returns fn applied to every element.
func (a *Array) Map(fn func(float64) float64) *Array {
	out := make([]float64, len(a.data))
	for i, v := range a.data {
		out[i] = fn(v)
	}
	return &Array{data: out, shape: slices.Clone(a.shape)}
}

// Cos returns the element-wise cosine, with elements in radians.
func (a *Array) Cos() *Array { return a.Map(math.Cos) }

// Deg2Rad converts every element from degrees to radians.
func (a *Array) Deg2Rad() *Array { return a.Scale(math.Pi / 180) }

// Sum returns the sum of all elements. The sum of an empty array is 0.
func (a *Array) Sum() float64 { return floats.Sum(a.data) }

// Mean returns the arithmetic mean of all elements, or NaN when empty.
func (a *Array) Mean() float64 {
	if len(a.data) == 0 {
		return math.NaN()
	}
	return floats.Sum(a.data) / float64(len(a.data))
}

// SumAxis sums along one axis and removes it from the result shape.
// Negative axes count from the last axis.
func (a *Array) SumAxis(axis int) (*Array, error) {
	nd := len(a.shape)
	ax := axis
	if ax < 0 {
		ax += nd
	}
	if ax < 0 || ax >= nd {
		return nil, fmt.Errorf("%w: axis %d for rank %d", ErrAxisOutOfRange, axis, nd)
	}

	outer := product(a.shape[:ax])
	n := a.shape[ax]
	inner := product(a.shape[ax+1:])

	out := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for j := 0; j < n; j++ {
			base := (o*n + j) * inner
			dst := out[o*inner : (o+1)*inner]
			floats.Add(dst, a.data[base:base+inner])
		}
	}

	shape := make([]int, 0, nd-1)
	shape = append(shape, a.shape[:ax]...)
	shape = append(shape, a.shape[ax+1:]...)
	return &Array{data: out, shape: shape}, nil
}

// binary applies op element-wise. Operands of identical shape go through
// the vectorised kernel; otherwise shapes are broadcast from the trailing axis.
func (a *Array) binary(
	b *Array,
	kernel func(dst, s, t []float64) []float64,
	op func(x, y float64) float64,
) (*Array, error) {
	if slices.Equal(a.shape, b.shape) {
		out := make([]float64, len(a.data))
		kernel(out, a.data, b.data)
		return &Array{data: out, shape: slices.Clone(a.shape)}, nil
	}

	shape, err := broadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	as := broadcastStrides(a.shape, shape)
	bs := broadcastStrides(b.shape, shape)

	out := make([]float64, product(shape))
	idx := make([]int, len(shape))
	for i := range out {
		var ao, bo int
		for k := range idx {
			ao += idx[k] * as[k]
			bo += idx[k] * bs[k]
		}
		out[i] = op(a.data[ao], b.data[bo])
		increment(idx, shape)
	}
	return &Array{data: out, shape: shape}, nil
}

// broadcastShape aligns shapes from the trailing axis; each pair of lengths
// must match or one of them must be 1.
func broadcastShape(x, y []int) ([]int, error) {
	nd := max(len(x), len(y))
	shape := make([]int, nd)
	for i := 1; i <= nd; i++ {
		dx, dy := 1, 1
		if i <= len(x) {
			dx = x[len(x)-i]
		}
		if i <= len(y) {
			dy = y[len(y)-i]
		}
		switch {
		case dx == dy, dy == 1:
			shape[nd-i] = dx
		case dx == 1:
			shape[nd-i] = dy
		default:
			return nil, fmt.Errorf("%w: shapes %v and %v", ErrBroadcast, x, y)
		}
	}
	return shape, nil
}

// broadcastStrides maps src strides onto out, with stride 0 on stretched axes.
func broadcastStrides(src, out []int) []int {
	st := strides(src)
	res := make([]int, len(out))
	offset := len(out) - len(src)
	for i, d := range src {
		if d != 1 {
			res[offset+i] = st[i]
		}
	}
	return res
}
