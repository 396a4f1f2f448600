package ldl

import (
	"fmt"
	"io"
	"math"
)

// Print writes a summary of the solver to w. With data the entries are
// printed, otherwise only the structure ('x' for a nonzero). After
// factorization the lower triangle holds L and the diagonal holds D.
func (s *Solver) Print(w io.Writer, data bool, header bool) {
	if s == nil || s.A == nil {
		return
	}
	factored := s.State == FactorReady

	if header {
		fmt.Fprintf(w, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d.\n", s.N, s.N)
		fmt.Fprintf(w, "State = %s.\n\n", s.State)
		if factored {
			fmt.Fprintf(w, "Matrix after factorization:\n")
		} else {
			fmt.Fprintf(w, "Matrix before factorization:\n")
		}
	}

	if s.N == 0 {
		return
	}

	columns := s.Config.PrinterWidth
	if header {
		columns -= 5
	}
	if data {
		columns = (columns + 1) / 10
	}
	columns = maxOf(columns, 1)

	dense := make([][]float64, 0, columns)
	present := make([][]bool, 0, columns)

	for startCol := 0; startCol < s.N; startCol += columns {
		stopCol := minOf(startCol+columns, s.N)

		dense, present = dense[:0], present[:0]
		for j := startCol; j < stopCol; j++ {
			col, mask := s.denseColumn(j, factored)
			dense = append(dense, col)
			present = append(present, mask)
		}

		if header {
			if data {
				fmt.Fprintf(w, "    ")
				for j := startCol; j < stopCol; j++ {
					fmt.Fprintf(w, " %9d", j)
				}
				fmt.Fprintf(w, "\n\n")
			} else {
				fmt.Fprintf(w, "Columns %d to %d.\n", startCol, stopCol-1)
			}
		}

		for i := 0; i < s.N; i++ {
			if header {
				fmt.Fprintf(w, "%4d", i)
				if !data {
					fmt.Fprintf(w, " ")
				}
			}
			for c := range dense {
				switch {
				case present[c][i] && data:
					fmt.Fprintf(w, " %9.3g", dense[c][i])
				case present[c][i]:
					fmt.Fprintf(w, "x")
				case data:
					fmt.Fprintf(w, "       ...")
				default:
					fmt.Fprintf(w, ".")
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if header {
		stats := s.calculateStatistics()
		fmt.Fprintf(w, "\nLargest element in matrix = %-1.4g.\n", stats.largestElement)
		fmt.Fprintf(w, "Smallest element in matrix = %-1.4g.\n", stats.smallestElement)

		if factored {
			fmt.Fprintf(w, "\nLargest diagonal element = %-1.4g.\n", stats.largestDiag)
			fmt.Fprintf(w, "Smallest diagonal element = %-1.4g.\n", stats.smallestDiag)
		} else {
			fmt.Fprintf(w, "\nLargest pivot element = %-1.4g.\n", stats.largestDiag)
			fmt.Fprintf(w, "Smallest pivot element = %-1.4g.\n", stats.smallestDiag)
		}

		density := float64(stats.elementCount) * 100.0 / float64(s.N*s.N)
		fmt.Fprintf(w, "\nDensity = %.2f%%.\n", density)
		if s.State != Empty {
			fmt.Fprintf(w, "Number of fill-ins = %d.\n", s.Fillins)
		}
		fmt.Fprintln(w)
	}
}

// denseColumn expands column j of the symmetric matrix, or of L+D once factored.
func (s *Solver) denseColumn(j int, factored bool) ([]float64, []bool) {
	col := make([]float64, s.N)
	mask := make([]bool, s.N)

	if factored {
		col[j], mask[j] = s.Factor.D[j], true
		for p := s.Factor.Lp[j]; p < s.Factor.Lp[j+1]; p++ {
			col[s.Factor.Li[p]], mask[s.Factor.Li[p]] = s.Factor.Lx[p], true
		}
		return col, mask
	}

	for p := s.A.ColStart[j]; p < s.A.ColStart[j+1]; p++ {
		col[s.A.RowIndex[p]] += s.A.Value[p]
		mask[s.A.RowIndex[p]] = true
	}
	// entries below the diagonal come from the rows of the upper triangle
	for k := j + 1; k < s.N; k++ {
		for p := s.A.ColStart[k]; p < s.A.ColStart[k+1]; p++ {
			if s.A.RowIndex[p] == j {
				col[k] += s.A.Value[p]
				mask[k] = true
			}
		}
	}
	return col, mask
}

type matrixStats struct {
	largestElement  float64
	smallestElement float64
	largestDiag     float64
	smallestDiag    float64
	elementCount    int
}

func (s *Solver) calculateStatistics() matrixStats {
	stats := matrixStats{
		smallestElement: math.MaxFloat64,
		smallestDiag:    math.MaxFloat64,
	}

	a := s.A
	for j := 0; j < a.N; j++ {
		for p := a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			magnitude := math.Abs(a.Value[p])
			i := a.RowIndex[p]
			if i < j {
				stats.elementCount += 2
			} else {
				stats.elementCount++
			}

			stats.largestElement = maxOf(stats.largestElement, magnitude)
			if magnitude != 0 {
				stats.smallestElement = minOf(stats.smallestElement, magnitude)
			}
			if i == j && s.State != FactorReady {
				stats.largestDiag = maxOf(stats.largestDiag, magnitude)
				if magnitude != 0 {
					stats.smallestDiag = minOf(stats.smallestDiag, magnitude)
				}
			}
		}
	}

	if s.State == FactorReady {
		for _, d := range s.Factor.D {
			magnitude := math.Abs(d)
			stats.largestDiag = maxOf(stats.largestDiag, magnitude)
			stats.smallestDiag = minOf(stats.smallestDiag, magnitude)
		}
	}

	if stats.elementCount == 0 {
		stats.smallestElement = 0
		stats.largestElement = 0
	}
	if stats.smallestDiag == math.MaxFloat64 {
		stats.smallestDiag = 0
	}
	return stats
}
