package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t testing.TB, data []float64, shape ...int) *Array {
	t.Helper()
	a, err := New(data, shape...)
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		shape   []int
		wantErr bool
	}{
		{name: "rank 1", data: []float64{1, 2, 3}, shape: []int{3}},
		{name: "rank 2", data: []float64{1, 2, 3, 4, 5, 6}, shape: []int{2, 3}},
		{name: "rank 0", data: []float64{7}, shape: nil},
		{name: "empty axis", data: nil, shape: []int{0, 4}},
		{name: "size mismatch", data: []float64{1, 2}, shape: []int{3}, wantErr: true},
		{name: "negative dimension", data: nil, shape: []int{-1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.data, tt.shape...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidShape)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.shape), a.Ndim())
			assert.Equal(t, len(tt.data), a.Size())
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	data := []float64{1, 2, 3}
	a := mustNew(t, data, 3)
	data[0] = 99

	got, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	out := a.Data()
	out[1] = 99
	got, err = a.At(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestAt(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = a.At(-1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = a.At(2, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = a.At(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRankPromotion(t *testing.T) {
	s := Scalar(4)
	assert.Equal(t, []int{1}, s.AtLeast1D().Shape())
	assert.Equal(t, []int{1, 1}, s.AtLeast2D().Shape())

	v := FromSlice([]float64{1, 2, 3})
	assert.Same(t, v, v.AtLeast1D())
	assert.Equal(t, []int{1, 3}, v.AtLeast2D().Shape())

	m := Zeros(2, 2)
	assert.Same(t, m, m.AtLeast2D())
}

func TestTranspose(t *testing.T) {
	tests := []struct {
		name      string
		in        *Array
		wantShape []int
		wantData  []float64
	}{
		{
			name:      "matrix",
			in:        mustNew(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3),
			wantShape: []int{3, 2},
			wantData:  []float64{1, 4, 2, 5, 3, 6},
		},
		{
			name:      "row vector",
			in:        mustNew(t, []float64{1, 2, 3}, 1, 3),
			wantShape: []int{3, 1},
			wantData:  []float64{1, 2, 3},
		},
		{
			name:      "rank 3 reverses all axes",
			in:        mustNew(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, 2, 2, 2),
			wantShape: []int{2, 2, 2},
			wantData:  []float64{0, 4, 2, 6, 1, 5, 3, 7},
		},
		{
			name:      "rank 1 unchanged",
			in:        FromSlice([]float64{1, 2}),
			wantShape: []int{2},
			wantData:  []float64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Transpose()
			assert.Equal(t, tt.wantShape, got.Shape())
			assert.Equal(t, tt.wantData, got.Data())
		})
	}
}

func TestTranspose_Involution(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 2, 3, 2)
	assert.True(t, a.Transpose().Transpose().Equal(a))
}

func TestReshape(t *testing.T) {
	a := FromSlice([]float64{1, 2, 3, 4})

	r, err := a.Reshape(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, r.Shape())

	_, err = a.Reshape(3)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestSqueeze(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		want  []int
	}{
		{name: "column", shape: []int{3, 1}, want: []int{3}},
		{name: "interior singleton", shape: []int{2, 1, 4}, want: []int{2, 4}},
		{name: "all ones", shape: []int{1, 1}, want: []int{}},
		{name: "no singletons", shape: []int{2, 3}, want: []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Zeros(tt.shape...).Squeeze()
			assert.Equal(t, tt.want, got.Shape())
		})
	}
}

func TestSlice(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)

	tests := []struct {
		name        string
		start, stop int
		wantShape   []int
		wantData    []float64
	}{
		{name: "prefix", start: 0, stop: 1, wantShape: []int{1, 2}, wantData: []float64{1, 2}},
		{name: "middle", start: 1, stop: 3, wantShape: []int{2, 2}, wantData: []float64{3, 4, 5, 6}},
		{name: "negative start", start: -1, stop: 3, wantShape: []int{1, 2}, wantData: []float64{5, 6}},
		{name: "clamped stop", start: 2, stop: 10, wantShape: []int{1, 2}, wantData: []float64{5, 6}},
		{name: "empty", start: 2, stop: 1, wantShape: []int{0, 2}, wantData: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Slice(tt.start, tt.stop)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, got.Shape())
			assert.Equal(t, tt.wantData, got.Data())
		})
	}

	_, err := Scalar(1).Slice(0, 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIndex(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)

	row, err := a.Index(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, row.Shape())
	assert.Equal(t, []float64{5, 6}, row.Data())

	elem, err := FromSlice([]float64{7, 8}).Index(1)
	require.NoError(t, err)
	assert.Equal(t, 0, elem.Ndim())
	assert.Equal(t, 8.0, elem.Sum())

	_, err = a.Index(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTemplates(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4}, 2, 2)

	z := a.ZerosLike()
	assert.Equal(t, []int{2, 2}, z.Shape())
	assert.Equal(t, []float64{0, 0, 0, 0}, z.Data())

	f := a.FullLike(2.5)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, f.Data())

	c := a.Copy()
	assert.True(t, c.Equal(a))
	assert.NotSame(t, a, c)
}

func TestFull_PanicsOnNegativeDimension(t *testing.T) {
	assert.Panics(t, func() { Zeros(-2) })
}

func TestEqualApprox(t *testing.T) {
	a := FromSlice([]float64{1, 2})
	b := FromSlice([]float64{1 + 1e-12, 2})
	assert.False(t, a.Equal(b))
	assert.True(t, a.EqualApprox(b, 1e-9))
	assert.False(t, a.EqualApprox(mustNew(t, []float64{1, 2}, 1, 2), 1e-9))
	assert.False(t, math.IsNaN(a.Sum()))
}
