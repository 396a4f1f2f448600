package ldl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStructure(t *testing.T) {
	s := newTestSolver(t)
	require.NoError(t, s.ComputePattern(sample3(t)))

	var buf bytes.Buffer
	s.Print(&buf, false, true)
	out := buf.String()

	assert.Contains(t, out, "Size of matrix = 3 x 3.")
	assert.Contains(t, out, "State = PatternReady.")
	assert.Contains(t, out, "Matrix before factorization:")
	assert.Contains(t, out, "Columns 0 to 2.")
	assert.Contains(t, out, "   0 x.x\n")
	assert.Contains(t, out, "   1 .x.\n")
	assert.Contains(t, out, "   2 x.x\n")
	assert.Contains(t, out, "Largest element in matrix = 4.")
	assert.Contains(t, out, "Smallest pivot element = 2.")
	assert.Contains(t, out, "Number of fill-ins = 0.")
}

func TestPrintFactored(t *testing.T) {
	s := newTestSolver(t)
	require.NoError(t, s.Invert(sample3(t)))

	var buf bytes.Buffer
	s.Print(&buf, false, true)
	out := buf.String()

	assert.Contains(t, out, "State = FactorReady.")
	assert.Contains(t, out, "Matrix after factorization:")
	// lower triangle of L and the diagonal D
	assert.Contains(t, out, "   0 x..\n")
	assert.Contains(t, out, "   2 x.x\n")
	assert.Contains(t, out, "Smallest diagonal element = 1.75.")

	buf.Reset()
	s.Print(&buf, true, false)
	assert.Contains(t, buf.String(), "0.25")
	assert.Contains(t, buf.String(), "1.75")
	assert.NotContains(t, buf.String(), "MATRIX SUMMARY")
}

func TestPrintColumnChunks(t *testing.T) {
	s, err := Create(&Configuration{PrinterWidth: 10})
	require.NoError(t, err)
	require.NoError(t, s.ComputePattern(laplacian2D(t, 3)))

	var buf bytes.Buffer
	s.Print(&buf, false, true)
	assert.Equal(t, 2, strings.Count(buf.String(), "Columns "))
	assert.Contains(t, buf.String(), "Columns 5 to 8.")
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	newTestSolver(t).Print(&buf, true, true)
	assert.Zero(t, buf.Len())
}
