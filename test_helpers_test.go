package ldl

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// sample3 is A = [[4,0,1],[0,3,0],[1,0,2]] stored as its upper triangle.
func sample3(t testing.TB) *CSC {
	t.Helper()
	a, err := NewCSC(3, []int{0, 1, 2, 4}, []int{0, 1, 0, 2}, []float64{4, 3, 1, 2})
	require.NoError(t, err)
	return a
}

// laplacian2D is the 5-point Laplacian on an m x m grid, upper triangle.
func laplacian2D(t testing.TB, m int) *CSC {
	t.Helper()
	n := m * m
	var rows, cols []int
	var vals []float64
	for y := 0; y < m; y++ {
		for x := 0; x < m; x++ {
			k := y*m + x
			rows, cols, vals = append(rows, k), append(cols, k), append(vals, 4)
			if x+1 < m {
				rows, cols, vals = append(rows, k), append(cols, k+1), append(vals, -1)
			}
			if y+1 < m {
				rows, cols, vals = append(rows, k), append(cols, k+m), append(vals, -1)
			}
		}
	}
	a, err := NewCSCFromTriplets(n, rows, cols, vals)
	require.NoError(t, err)
	return a
}

// randomSPD returns a sparse, strictly diagonally dominant symmetric matrix.
func randomSPD(t testing.TB, n int, density float64, rng *rand.Rand) *CSC {
	t.Helper()
	rowSum := make([]float64, n)
	var rows, cols []int
	var vals []float64
	for j := 0; j < n; j++ {
		for i := 0; i < j; i++ {
			if rng.Float64() >= density {
				continue
			}
			v := 2*rng.Float64() - 1
			rows, cols, vals = append(rows, i), append(cols, j), append(vals, v)
			rowSum[i] += math.Abs(v)
			rowSum[j] += math.Abs(v)
		}
	}
	for k := 0; k < n; k++ {
		rows, cols, vals = append(rows, k), append(cols, k), append(vals, rowSum[k]+1+rng.Float64())
	}
	a, err := NewCSCFromTriplets(n, rows, cols, vals)
	require.NoError(t, err)
	return a
}

func randomVector(n int, rng *rand.Rand) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*rng.Float64() - 1
	}
	return v
}

// withValues returns a copy of a with the same structure and new values.
func withValues(a *CSC, f func(i, j int, v float64) float64) *CSC {
	b := &CSC{
		N:        a.N,
		ColStart: append([]int(nil), a.ColStart...),
		RowIndex: append([]int(nil), a.RowIndex...),
		Value:    make([]float64, len(a.Value)),
	}
	for j := 0; j < a.N; j++ {
		for p := a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			b.Value[p] = f(a.RowIndex[p], j, a.Value[p])
		}
	}
	return b
}

func newTestSolver(t testing.TB) *Solver {
	t.Helper()
	s, err := Create(nil)
	require.NoError(t, err)
	return s
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
