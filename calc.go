package ldl

import (
	"fmt"
	"math"
)

// Residual returns the normalized residual ||A*x - b||inf / ||b||inf for the
// symmetric matrix whose upper triangle is a. A zero b gives the absolute residual.
func Residual(a *CSC, x, b []float64) (float64, error) {
	if a == nil {
		return 0, ldlErrorf("Residual", ErrNilMatrix)
	}
	if len(b) != a.N {
		return 0, ldlErrorf("Residual", fmt.Errorf("%w: rhs length %d, matrix size %d", ErrShapeMismatch, len(b), a.N))
	}
	ax := make([]float64, a.N)
	if err := a.MulVec(ax, x); err != nil {
		return 0, ldlErrorf("Residual", err)
	}

	var maxRes, maxRHS float64
	for i := range ax {
		maxRes = maxOf(maxRes, math.Abs(ax[i]-b[i]))
		maxRHS = maxOf(maxRHS, math.Abs(b[i]))
	}
	if maxRHS == 0 {
		return maxRes, nil
	}
	return maxRes / maxRHS, nil
}

// LargestElement returns the largest magnitude stored in the upper triangle
// of a, or 0 for a nil matrix.
func LargestElement(a *CSC) float64 {
	if a == nil {
		return 0
	}
	largest := 0.0
	for _, v := range a.Value[:a.NNZ()] {
		largest = maxOf(largest, math.Abs(v))
	}
	return largest
}

// Norm returns the infinity norm of the symmetric matrix whose upper triangle
// is a. A nil matrix has norm 0.
func Norm(a *CSC) float64 {
	if a == nil {
		return 0
	}
	rowSum := make([]float64, a.N)
	for j := 0; j < a.N; j++ {
		for p := a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			i := a.RowIndex[p]
			switch {
			case i == j:
				rowSum[i] += math.Abs(a.Value[p])
			case i < j:
				rowSum[i] += math.Abs(a.Value[p])
				rowSum[j] += math.Abs(a.Value[p])
			}
		}
	}
	norm := 0.0
	for _, r := range rowSum {
		norm = maxOf(norm, r)
	}
	return norm
}
