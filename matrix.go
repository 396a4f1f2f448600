package ldl

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// ColumnReader is read access to one triangle of a symmetric matrix in
// compressed column form. Column j returns the row indices and values of its
// nonzeros; only rows <= j take part in the factorization.
//
// Implementations must not change while a Solver reads them.
type ColumnReader interface {
	Size() int
	Column(j int) (rows []int, values []float64)
}

// CSC is a symmetric matrix stored as its upper triangle in compressed column form.
type CSC struct {
	N        int
	ColStart []int     // [0...N]
	RowIndex []int     // [0...ColStart[N])
	Value    []float64 // [0...ColStart[N])
}

type cscOptions struct {
	lower bool
}

type CSCOption func(*cscOptions)

// WithLowerTriangle declares the input arrays as the lower triangle. The copy
// is transposed to upper storage; the caller arrays are left untouched.
func WithLowerTriangle() CSCOption {
	return func(o *cscOptions) { o.lower = true }
}

// NewCSC validates and copies caller owned compressed column arrays. Any
// integer type can be used for the index arrays.
func NewCSC[I constraints.Integer](n int, colStart, rowIndex []I, value []float64, opts ...CSCOption) (*CSC, error) {
	var o cscOptions
	for _, opt := range opts {
		opt(&o)
	}

	if n < 0 {
		return nil, ldlErrorf("NewCSC", fmt.Errorf("%w: negative size %d", ErrMalformedMatrix, n))
	}
	if len(colStart) != n+1 {
		return nil, ldlErrorf("NewCSC", fmt.Errorf("%w: %d column pointers for size %d", ErrMalformedMatrix, len(colStart), n))
	}

	m := &CSC{
		N:        n,
		ColStart: make([]int, n+1),
	}
	for j, p := range colStart {
		m.ColStart[j] = int(p)
	}
	if err := m.checkColStart(len(rowIndex), len(value)); err != nil {
		return nil, ldlErrorf("NewCSC", err)
	}

	nnz := m.ColStart[n]
	m.RowIndex = make([]int, nnz)
	m.Value = make([]float64, nnz)
	for p := 0; p < nnz; p++ {
		m.RowIndex[p] = int(rowIndex[p])
	}
	copy(m.Value, value[:nnz])

	if err := m.checkRows(); err != nil {
		return nil, ldlErrorf("NewCSC", err)
	}

	if o.lower {
		m = m.Transpose()
	}
	return m, nil
}

// NewCSCFromTriplets compresses (row, col, value) triplets of the upper
// triangle. Duplicates are summed and entries below the diagonal are dropped.
func NewCSCFromTriplets(n int, rows, cols []int, values []float64) (*CSC, error) {
	if n < 0 {
		return nil, ldlErrorf("NewCSCFromTriplets", fmt.Errorf("%w: negative size %d", ErrMalformedMatrix, n))
	}
	if len(rows) != len(cols) || len(rows) != len(values) {
		return nil, ldlErrorf("NewCSCFromTriplets", fmt.Errorf("%w: triplet arrays of length %d, %d, %d",
			ErrMalformedMatrix, len(rows), len(cols), len(values)))
	}

	type entry struct {
		row int
		val float64
	}
	columns := make([][]entry, n)
	for t := range rows {
		i, j := rows[t], cols[t]
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, ldlErrorf("NewCSCFromTriplets", fmt.Errorf("%w: entry (%d,%d) outside %dx%d",
				ErrMalformedMatrix, i, j, n, n))
		}
		if i > j {
			continue
		}
		columns[j] = append(columns[j], entry{row: i, val: values[t]})
	}

	m := &CSC{N: n, ColStart: make([]int, n+1)}
	for j, col := range columns {
		sort.SliceStable(col, func(a, b int) bool { return col[a].row < col[b].row })
		for _, e := range col {
			last := len(m.RowIndex) - 1
			if last >= m.ColStart[j] && m.RowIndex[last] == e.row {
				m.Value[last] += e.val
				continue
			}
			m.RowIndex = append(m.RowIndex, e.row)
			m.Value = append(m.Value, e.val)
		}
		m.ColStart[j+1] = len(m.RowIndex)
	}
	return m, nil
}

func (m *CSC) Size() int { return m.N }

func (m *CSC) Column(j int) ([]int, []float64) {
	p, q := m.ColStart[j], m.ColStart[j+1]
	return m.RowIndex[p:q], m.Value[p:q]
}

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int {
	if m.N == 0 || len(m.ColStart) == 0 {
		return 0
	}
	return m.ColStart[m.N]
}

// Transpose returns a new matrix holding m' in compressed column form.
func (m *CSC) Transpose() *CSC {
	t := &CSC{
		N:        m.N,
		ColStart: make([]int, m.N+1),
		RowIndex: make([]int, m.NNZ()),
		Value:    make([]float64, m.NNZ()),
	}

	for _, i := range m.RowIndex[:m.NNZ()] {
		t.ColStart[i+1]++
	}
	for j := 0; j < m.N; j++ {
		t.ColStart[j+1] += t.ColStart[j]
	}

	next := make([]int, m.N)
	copy(next, t.ColStart[:m.N])
	for j := 0; j < m.N; j++ {
		for p := m.ColStart[j]; p < m.ColStart[j+1]; p++ {
			i := m.RowIndex[p]
			q := next[i]
			t.RowIndex[q] = j
			t.Value[q] = m.Value[p]
			next[i]++
		}
	}
	return t
}

// MulVec sets y = A*x where A is the symmetric matrix whose upper triangle is m.
func (m *CSC) MulVec(y, x []float64) error {
	if len(x) != m.N || len(y) != m.N {
		return ldlErrorf("MulVec", fmt.Errorf("%w: x %d, y %d, matrix %d", ErrShapeMismatch, len(x), len(y), m.N))
	}
	for i := range y {
		y[i] = 0
	}
	for j := 0; j < m.N; j++ {
		for p := m.ColStart[j]; p < m.ColStart[j+1]; p++ {
			i := m.RowIndex[p]
			switch {
			case i == j:
				y[i] += m.Value[p] * x[j]
			case i < j:
				y[i] += m.Value[p] * x[j]
				y[j] += m.Value[p] * x[i]
			}
		}
	}
	return nil
}

// Validate checks the length and ordering invariants of m.
func (m *CSC) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.N < 0 {
		return fmt.Errorf("%w: negative size %d", ErrMalformedMatrix, m.N)
	}
	if len(m.ColStart) != m.N+1 {
		return fmt.Errorf("%w: %d column pointers for size %d", ErrMalformedMatrix, len(m.ColStart), m.N)
	}
	if err := m.checkColStart(len(m.RowIndex), len(m.Value)); err != nil {
		return err
	}
	return m.checkRows()
}

func (m *CSC) checkColStart(nIndex, nValue int) error {
	if m.ColStart[0] != 0 {
		return fmt.Errorf("%w: first column pointer is %d", ErrMalformedMatrix, m.ColStart[0])
	}
	for j := 0; j < m.N; j++ {
		if m.ColStart[j+1] < m.ColStart[j] {
			return fmt.Errorf("%w: column pointers decrease at column %d", ErrMalformedMatrix, j)
		}
	}
	if nnz := m.ColStart[m.N]; nnz > nIndex || nnz > nValue {
		return fmt.Errorf("%w: %d entries but %d row indices and %d values", ErrMalformedMatrix, nnz, nIndex, nValue)
	}
	return nil
}

func (m *CSC) checkRows() error {
	for j := 0; j < m.N; j++ {
		for p := m.ColStart[j]; p < m.ColStart[j+1]; p++ {
			if i := m.RowIndex[p]; i < 0 || i >= m.N {
				return fmt.Errorf("%w: row index %d in column %d outside size %d", ErrMalformedMatrix, i, j, m.N)
			}
		}
	}
	return nil
}

// copyUpper reads any ColumnReader into a CSC, keeping rows <= col.
func copyUpper(a ColumnReader) (*CSC, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if c, ok := a.(*CSC); ok {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	n := a.Size()
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrMalformedMatrix, n)
	}

	m := &CSC{N: n, ColStart: make([]int, n+1)}
	for j := 0; j < n; j++ {
		rows, values := a.Column(j)
		if len(rows) != len(values) {
			return nil, fmt.Errorf("%w: column %d has %d rows and %d values", ErrMalformedMatrix, j, len(rows), len(values))
		}
		for p, i := range rows {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("%w: row index %d in column %d outside size %d", ErrMalformedMatrix, i, j, n)
			}
			if i > j {
				continue
			}
			m.RowIndex = append(m.RowIndex, i)
			m.Value = append(m.Value, values[p])
		}
		m.ColStart[j+1] = len(m.RowIndex)
	}
	return m, nil
}

// sameStructure reports whether a has the nonzero structure of m.
func (m *CSC) sameStructure(a *CSC) bool {
	if m == nil || a == nil || m.N != a.N || m.NNZ() != a.NNZ() {
		return false
	}
	for j := 0; j <= m.N; j++ {
		if m.ColStart[j] != a.ColStart[j] {
			return false
		}
	}
	for p := 0; p < m.NNZ(); p++ {
		if m.RowIndex[p] != a.RowIndex[p] {
			return false
		}
	}
	return true
}
