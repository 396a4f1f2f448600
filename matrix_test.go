package ldl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSCValidation(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		colStart []int
		rowIndex []int
		value    []float64
	}{
		{"negative size", -1, []int{0}, nil, nil},
		{"short column pointers", 2, []int{0, 1}, []int{0}, []float64{1}},
		{"first pointer not zero", 1, []int{1, 1}, []int{0}, []float64{1}},
		{"decreasing pointers", 2, []int{0, 2, 1}, []int{0, 1}, []float64{1, 2}},
		{"pointers beyond arrays", 1, []int{0, 3}, []int{0}, []float64{1}},
		{"row index too large", 2, []int{0, 1, 2}, []int{0, 2}, []float64{1, 2}},
		{"negative row index", 2, []int{0, 1, 2}, []int{0, -1}, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSC(tt.n, tt.colStart, tt.rowIndex, tt.value)
			require.ErrorIs(t, err, ErrMalformedMatrix)
		})
	}
}

func TestNewCSCCopiesInput(t *testing.T) {
	colStart := []int64{0, 1, 2, 4}
	rowIndex := []int64{0, 1, 0, 2}
	value := []float64{4, 3, 1, 2}

	a, err := NewCSC(3, colStart, rowIndex, value)
	require.NoError(t, err)

	a.Value[0] = 100
	a.RowIndex[0] = 2
	assert.Equal(t, []float64{4, 3, 1, 2}, value)
	assert.Equal(t, []int64{0, 1, 0, 2}, rowIndex)
	assert.Equal(t, []int{0, 1, 2, 4}, a.ColStart)
}

func TestNewCSCEmpty(t *testing.T) {
	a, err := NewCSC[int](0, []int{0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 0, a.NNZ())
}

func TestNewCSCLowerTriangle(t *testing.T) {
	// lower triangle of [[4,0,1],[0,3,0],[1,0,2]]
	colStart := []int{0, 2, 3, 4}
	rowIndex := []int{0, 2, 1, 2}
	value := []float64{4, 1, 3, 2}

	a, err := NewCSC(3, colStart, rowIndex, value, WithLowerTriangle())
	require.NoError(t, err)

	want := sample3(t)
	assert.Equal(t, want.ColStart, a.ColStart)
	assert.Equal(t, want.RowIndex, a.RowIndex)
	assert.Equal(t, want.Value, a.Value)
	assert.Equal(t, []int{0, 2, 3, 4}, colStart, "caller arrays untouched")
}

func TestNewCSCFromTriplets(t *testing.T) {
	// duplicates are summed, entries below the diagonal dropped
	a, err := NewCSCFromTriplets(3,
		[]int{2, 0, 0, 1, 0, 2, 2},
		[]int{2, 0, 2, 1, 2, 0, 2},
		[]float64{1, 4, 0.5, 3, 0.5, 99, 1},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 4}, a.ColStart)
	assert.Equal(t, []int{0, 1, 0, 2}, a.RowIndex)
	assert.Equal(t, []float64{4, 3, 1, 2}, a.Value)

	_, err = NewCSCFromTriplets(2, []int{0, 2}, []int{0, 1}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrMalformedMatrix)

	_, err = NewCSCFromTriplets(2, []int{0}, []int{0, 1}, []float64{1})
	assert.ErrorIs(t, err, ErrMalformedMatrix)
}

func TestMulVecSymmetric(t *testing.T) {
	a := sample3(t)
	y := make([]float64, 3)
	require.NoError(t, a.MulVec(y, []float64{1, 2, 3}))
	assert.Equal(t, []float64{7, 6, 7}, y)

	assert.ErrorIs(t, a.MulVec(y, []float64{1, 2}), ErrShapeMismatch)
}

func TestTranspose(t *testing.T) {
	a := sample3(t)
	at := a.Transpose()
	assert.Equal(t, []int{0, 2, 3, 4}, at.ColStart)
	assert.Equal(t, []int{0, 2, 1, 2}, at.RowIndex)
	assert.Equal(t, []float64{4, 1, 3, 2}, at.Value)
	assert.Equal(t, a.Value, at.Transpose().Value)
}

func TestCopyUpperDropsLower(t *testing.T) {
	// full storage of the sample matrix
	full, err := NewCSC(3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{4, 1, 3, 1, 2})
	require.NoError(t, err)

	m, err := copyUpper(full)
	require.NoError(t, err)
	assert.True(t, m.sameStructure(sample3(t)))
	assert.Equal(t, sample3(t).Value, m.Value)
}

func TestValidate(t *testing.T) {
	var nilMatrix *CSC
	assert.ErrorIs(t, nilMatrix.Validate(), ErrNilMatrix)

	a := sample3(t)
	a.ColStart[2] = 5
	assert.ErrorIs(t, a.Validate(), ErrMalformedMatrix)
}
