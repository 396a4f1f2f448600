package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProblem = `Starting
Sample 3x3
3 real
1 1 4
2 2 3
1 3 1
3 3 2
0 0 0
Beginning
1
2
3
`

func TestReadProblem(t *testing.T) {
	pb, err := readProblem(strings.NewReader(sampleProblem), false)
	require.NoError(t, err)

	assert.Equal(t, "Sample 3x3", pb.description)
	assert.Equal(t, 3, pb.size)
	assert.Equal(t, []int{0, 1, 2, 4}, pb.matrix.ColStart)
	assert.Equal(t, []int{0, 1, 0, 2}, pb.matrix.RowIndex)
	assert.Equal(t, []float64{4, 3, 1, 2}, pb.matrix.Value)
	assert.Equal(t, []float64{1, 2, 3}, pb.rhs)
}

func TestReadProblemLower(t *testing.T) {
	input := "Lower sample\n3\n1 1 4\n2 2 3\n3 1 1\n3 3 2\n0 0 0\n"

	pb, err := readProblem(strings.NewReader(input), true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 2}, pb.matrix.RowIndex)
	assert.Equal(t, []float64{4, 3, 1, 2}, pb.matrix.Value)
	assert.Nil(t, pb.rhs)

	// without the flag the entry below the diagonal is dropped
	pb, err = readProblem(strings.NewReader(input), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 3, 2}, pb.matrix.Value)
}

func TestReadProblemErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no size", "title\n"},
		{"bad size", "title\nthree\n"},
		{"complex", "title\n2 complex\n"},
		{"short triplet", "title\n2\n1 1\n"},
		{"bad value", "title\n2\n1 1 x\n"},
		{"index out of range", "title\n2\n3 3 1\n0 0 0\n"},
		{"short rhs", "title\n2\n1 1 1\n2 2 1\n0 0 0\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readProblem(strings.NewReader(tt.input), false)
			assert.Error(t, err)
		})
	}
}

func TestReadVector(t *testing.T) {
	v, err := readVector(strings.NewReader("1 2.5\n-3e2\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -300}, v)

	_, err = readVector(strings.NewReader("1 two"))
	assert.Error(t, err)
}
