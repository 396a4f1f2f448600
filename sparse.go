package ldl // import "github.com/edp1096/ldl"

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Create returns an empty Solver. A nil config selects the defaults.
func Create(config *Configuration) (*Solver, error) {
	defaultConfig := Configuration{
		AbsThreshold: 0.0,
		PrinterWidth: 80,
		Annotate:     ANNOTATE_NONE,
	}

	cfg := defaultConfig
	if config != nil {
		cfg = *config
	}
	if cfg.AbsThreshold < 0 || math.IsNaN(cfg.AbsThreshold) {
		return nil, fmt.Errorf("invalid absolute threshold: %g", cfg.AbsThreshold)
	}
	if cfg.PrinterWidth <= 0 {
		cfg.PrinterWidth = defaultConfig.PrinterWidth
	}

	s := &Solver{
		Config:      cfg,
		State:       Empty,
		SingularCol: -1,
		log:         zerolog.Nop(),
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}
	return s, nil
}

// ComputePattern runs the symbolic analysis of a and discards any numeric factor.
// On error the Solver is left unchanged.
func (s *Solver) ComputePattern(a ColumnReader) error {
	m, err := copyUpper(a)
	if err != nil {
		return ldlErrorf("ComputePattern", err)
	}
	s.setPattern(m)
	return nil
}

func (s *Solver) setPattern(m *CSC) {
	s.ensureWorkspace(m.N)

	p := newPattern(m.N)
	analyze(m, p, s.work.Flag)

	s.N = m.N
	s.A = m
	s.Pattern = p
	s.Factor = nil
	s.State = PatternReady
	s.SingularCol = -1
	s.Elements = m.NNZ()
	s.Fillins = p.NNZ() - strictUpperCount(m)

	if s.Config.Annotate >= ANNOTATE_SUMMARY {
		s.log.Info().
			Int("n", m.N).
			Int("nnz_a", s.Elements).
			Int("nnz_l", p.NNZ()).
			Int("fillins", s.Fillins).
			Msg("symbolic analysis done")
	}
}

// ComputeFactor computes the numeric factorization of a. The symbolic pattern
// is recomputed only when the Solver is Empty or the structure of a differs
// from the last analyzed matrix. A zero pivot leaves the Solver in PatternReady.
func (s *Solver) ComputeFactor(a ColumnReader) error {
	m, err := copyUpper(a)
	if err != nil {
		return ldlErrorf("ComputeFactor", err)
	}

	if s.State == Empty || !s.A.sameStructure(m) {
		s.setPattern(m)
	} else {
		s.A = m
		s.ensureWorkspace(m.N)
	}

	// a published Factor is never written again
	f := newFactor(s.Pattern)
	s.Factor = nil
	s.State = PatternReady

	// fill counters live in the workspace; s.Pattern is read only
	copy(s.work.Count, s.Pattern.Lnz)
	pat := &Pattern{N: s.Pattern.N, Parent: s.Pattern.Parent, Lnz: s.work.Count, Lp: s.Pattern.Lp}

	config := s.Config
	config.Logger = &s.log
	if err := factorize(m, pat, f, &s.work, config); err != nil {
		var pe *PivotError
		if errors.As(err, &pe) {
			s.SingularCol = pe.Col
			s.log.Warn().Int("col", pe.Col).Float64("d", pe.Value).Msg("zero pivot")
		}
		return ldlErrorf("ComputeFactor", err)
	}

	s.Factor = f
	s.State = FactorReady
	s.SingularCol = -1

	if s.Config.Annotate >= ANNOTATE_SUMMARY {
		mant, exp := f.Determinant()
		s.log.Info().
			Int("n", m.N).
			Float64("det_mantissa", mant).
			Int("det_exponent", exp).
			Msg("numeric factorization done")
	}
	return nil
}

// Invert analyzes and factors a from scratch.
func (s *Solver) Invert(a ColumnReader) error {
	if err := s.ComputePattern(a); err != nil {
		return err
	}
	return s.ComputeFactor(a)
}

// Solve overwrites rhs with the solution of A x = rhs. State is not changed.
func (s *Solver) Solve(rhs []float64) error {
	if s.State != FactorReady {
		return ldlErrorf("Solve", ErrNotFactored)
	}
	return s.Factor.Solve(rhs)
}

// SolveVec is Solve on a caller owned Vector.
func (s *Solver) SolveVec(v Vector) error {
	if s.State != FactorReady {
		return ldlErrorf("SolveVec", ErrNotFactored)
	}
	if len(s.solveBuf) != s.N {
		s.solveBuf = make([]float64, s.N)
	}
	return s.Factor.SolveVec(v, s.solveBuf)
}

// Determinant of the factored matrix as mantissa * 10^exponent.
func (s *Solver) Determinant() (float64, int, error) {
	if s.State != FactorReady {
		return 0, 0, ldlErrorf("Determinant", ErrNotFactored)
	}
	mant, exp := s.Factor.Determinant()
	return mant, exp, nil
}

// Clear drops the numeric factor and keeps the pattern.
func (s *Solver) Clear() {
	s.Factor = nil
	s.SingularCol = -1
	if s.Pattern != nil {
		s.State = PatternReady
	} else {
		s.State = Empty
	}
}

// Destroy releases all state; the Solver is Empty afterwards.
func (s *Solver) Destroy() {
	s.N = 0
	s.A = nil
	s.Pattern = nil
	s.Factor = nil
	s.work = workspace{}
	s.solveBuf = nil
	s.State = Empty
	s.SingularCol = -1
	s.Elements = 0
	s.Fillins = 0
}

func (s *Solver) ensureWorkspace(n int) {
	if len(s.work.Flag) != n || len(s.work.Count) != n {
		s.work = newWorkspace(n)
	}
}

func strictUpperCount(m *CSC) int {
	count := 0
	for j := 0; j < m.N; j++ {
		for p := m.ColStart[j]; p < m.ColStart[j+1]; p++ {
			if m.RowIndex[p] < j {
				count++
			}
		}
	}
	return count
}
