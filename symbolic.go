package ldl

import "fmt"

// Analyze computes the elimination tree and the column counts of L from the
// nonzero structure of a. Values are not read.
func Analyze(a ColumnReader) (*Pattern, error) {
	m, err := copyUpper(a)
	if err != nil {
		return nil, ldlErrorf("Analyze", err)
	}
	p := newPattern(m.N)
	analyze(m, p, make([]int, m.N))
	return p, nil
}

func newPattern(n int) *Pattern {
	return &Pattern{
		N:      n,
		Parent: make([]int, n),
		Lnz:    make([]int, n),
		Lp:     make([]int, n+1),
	}
}

// analyze fills p from the structure of the upper triangle m. flag is scratch
// of length m.N.
func analyze(m *CSC, p *Pattern, flag []int) {
	for k := 0; k < m.N; k++ {
		p.Parent[k] = -1
		flag[k] = k
		p.Lnz[k] = 0

		for q := m.ColStart[k]; q < m.ColStart[k+1]; q++ {
			i := m.RowIndex[q]
			if i >= k {
				continue
			}
			// walk from i up the tree, stop at a node already reached from k
			for ; flag[i] != k; i = p.Parent[i] {
				if p.Parent[i] == -1 {
					p.Parent[i] = k
				}
				p.Lnz[i]++
				flag[i] = k
			}
		}
	}

	p.Lp[0] = 0
	for k := 0; k < m.N; k++ {
		p.Lp[k+1] = p.Lp[k] + p.Lnz[k]
	}
}

// NNZ returns the number of strictly lower entries of L.
func (p *Pattern) NNZ() int {
	return p.Lp[p.N]
}

// Equal reports whether p and q describe the same elimination tree and layout.
func (p *Pattern) Equal(q *Pattern) bool {
	if p == nil || q == nil || p.N != q.N {
		return p == q
	}
	for k := 0; k < p.N; k++ {
		if p.Parent[k] != q.Parent[k] || p.Lnz[k] != q.Lnz[k] {
			return false
		}
	}
	return true
}

// validate asserts the length invariants relied on by the numeric phase.
func (p *Pattern) validate() error {
	if p == nil {
		return ErrNilMatrix
	}
	n := p.N
	if n < 0 || len(p.Parent) != n || len(p.Lnz) != n || len(p.Lp) != n+1 {
		return fmt.Errorf("%w: pattern arrays do not match size %d", ErrMalformedMatrix, n)
	}
	if p.Lp[0] != 0 {
		return fmt.Errorf("%w: first L column pointer is %d", ErrMalformedMatrix, p.Lp[0])
	}
	for k := 0; k < n; k++ {
		if par := p.Parent[k]; par != -1 && (par <= k || par >= n) {
			return fmt.Errorf("%w: parent %d of column %d", ErrMalformedMatrix, par, k)
		}
		if p.Lnz[k] < 0 || p.Lp[k+1] != p.Lp[k]+p.Lnz[k] {
			return fmt.Errorf("%w: L column pointers inconsistent at column %d", ErrMalformedMatrix, k)
		}
	}
	return nil
}
