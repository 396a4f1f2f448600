package ldl

import (
	"golang.org/x/exp/constraints"
)

func (s *Solver) ElementCount() int {
	return s.Elements
}

func (s *Solver) FillinCount() int {
	return s.Fillins
}

func (s *Solver) GetSize() int {
	return s.N
}

// FactorCount returns the number of strictly lower entries of L.
func (s *Solver) FactorCount() int {
	if s.Pattern == nil {
		return 0
	}
	return s.Pattern.NNZ()
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
