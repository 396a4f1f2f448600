package ldl

import (
	"fmt"
	"math"
)

// Factorize computes L and D of a = L*D*L' for the structure described by p.
// It fails with ErrZeroPivot (as a *PivotError) when a pivot is zero or not finite.
func Factorize(a ColumnReader, p *Pattern) (*Factor, error) {
	if err := p.validate(); err != nil {
		return nil, ldlErrorf("Factorize", err)
	}
	m, err := copyUpper(a)
	if err != nil {
		return nil, ldlErrorf("Factorize", err)
	}
	if m.N != p.N {
		return nil, ldlErrorf("Factorize", fmt.Errorf("%w: matrix size %d, pattern size %d", ErrShapeMismatch, m.N, p.N))
	}

	pat := &Pattern{N: p.N, Parent: p.Parent, Lnz: append([]int(nil), p.Lnz...), Lp: p.Lp}
	f := newFactor(pat)
	w := newWorkspace(m.N)
	if err := factorize(m, pat, f, &w, Configuration{}); err != nil {
		return nil, ldlErrorf("Factorize", err)
	}
	return f, nil
}

func newFactor(p *Pattern) *Factor {
	return &Factor{
		N:  p.N,
		Lp: p.Lp,
		Li: make([]int, p.NNZ()),
		Lx: make([]float64, p.NNZ()),
		D:  make([]float64, p.N),
	}
}

func newWorkspace(n int) workspace {
	return workspace{
		Flag:    make([]int, n),
		Y:       make([]float64, n),
		Pattern: make([]int, n),
		Count:   make([]int, n),
	}
}

// factorize is the up-looking LDL' elimination. Row k of L is computed from
// column k of the upper triangle; p.Lnz is used as the fill counter of each
// column of L and is equal to the column counts again on success.
func factorize(m *CSC, p *Pattern, f *Factor, w *workspace, config Configuration) error {
	n := m.N
	y, flag, stack := w.Y, w.Flag, w.Pattern
	for k := 0; k < n; k++ {
		y[k] = 0
		flag[k] = -1
	}

	for k := 0; k < n; k++ {
		// nonzero pattern of row k of L, in topological order on stack[top:n]
		top := n
		flag[k] = k
		p.Lnz[k] = 0

		for q := m.ColStart[k]; q < m.ColStart[k+1]; q++ {
			i := m.RowIndex[q]
			if i > k {
				continue
			}
			y[i] += m.Value[q]

			depth := 0
			for flag[i] != k {
				stack[depth] = i
				depth++
				flag[i] = k
				if i = p.Parent[i]; i < 0 {
					restoreCounts(p)
					return fmt.Errorf("%w: pattern does not reach column %d", ErrMalformedMatrix, k)
				}
			}
			for depth > 0 {
				top--
				depth--
				stack[top] = stack[depth]
			}
		}

		f.D[k] = y[k]
		y[k] = 0

		for ; top < n; top++ {
			i := stack[top]
			yi := y[i]
			y[i] = 0

			end := f.Lp[i] + p.Lnz[i]
			if end >= f.Lp[i+1] {
				restoreCounts(p)
				return fmt.Errorf("%w: column %d of L overflows its layout", ErrMalformedMatrix, i)
			}
			for q := f.Lp[i]; q < end; q++ {
				y[f.Li[q]] -= f.Lx[q] * yi
			}

			lki := yi / f.D[i]
			f.D[k] -= lki * yi
			f.Li[end] = k
			f.Lx[end] = lki
			p.Lnz[i]++
		}

		if isZeroPivot(f.D[k], config) {
			restoreCounts(p)
			return &PivotError{Col: k, Value: f.D[k]}
		}

		if config.Annotate >= ANNOTATE_FULL && config.Logger != nil {
			config.Logger.Info().
				Int("col", k).
				Float64("d", f.D[k]).
				Int("reach", n-top).
				Msg("column factored")
		}
	}
	return nil
}

func isZeroPivot(d float64, config Configuration) bool {
	if d == 0 {
		return true
	}
	if !config.AllowNonFinite && (math.IsNaN(d) || math.IsInf(d, 0)) {
		return true
	}
	return math.Abs(d) <= config.AbsThreshold
}

// restoreCounts resets p.Lnz from p.Lp after an aborted factorization.
func restoreCounts(p *Pattern) {
	for k := 0; k < p.N; k++ {
		p.Lnz[k] = p.Lp[k+1] - p.Lp[k]
	}
}

// Determinant returns det(A) = prod(D) as mantissa * 10^exponent with
// 1 <= |mantissa| < 10, so that large systems do not overflow.
func (f *Factor) Determinant() (mantissa float64, exponent int) {
	if f.N == 0 {
		return 1, 0
	}
	mantissa = 1
	for _, d := range f.D {
		mantissa *= d
		if mantissa == 0 {
			return 0, 0
		}
		if math.IsNaN(mantissa) || math.IsInf(mantissa, 0) {
			return mantissa, exponent
		}
		for math.Abs(mantissa) >= 10 {
			mantissa *= 0.1
			exponent++
		}
		for math.Abs(mantissa) < 1 {
			mantissa *= 10
			exponent--
		}
	}
	return mantissa, exponent
}

// validate asserts the length invariants relied on by the triangular solves.
func (f *Factor) validate() error {
	if f == nil {
		return ErrNotFactored
	}
	n := f.N
	if n < 0 || len(f.D) != n || len(f.Lp) != n+1 {
		return fmt.Errorf("%w: factor arrays do not match size %d", ErrMalformedMatrix, n)
	}
	nnz := f.Lp[n]
	if len(f.Li) != nnz || len(f.Lx) != nnz {
		return fmt.Errorf("%w: L has %d entries, expected %d", ErrMalformedMatrix, len(f.Li), nnz)
	}
	for j := 0; j < n; j++ {
		if f.Lp[j+1] < f.Lp[j] {
			return fmt.Errorf("%w: L column pointers decrease at column %d", ErrMalformedMatrix, j)
		}
		for q := f.Lp[j]; q < f.Lp[j+1]; q++ {
			if i := f.Li[q]; i <= j || i >= n {
				return fmt.Errorf("%w: L row index %d in column %d", ErrMalformedMatrix, i, j)
			}
		}
	}
	return nil
}
