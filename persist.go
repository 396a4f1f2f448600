package ldl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Save writes the complete solver state to w as whitespace separated text:
// the tag, n, the matrix arrays (values, row indices, column pointers), D,
// the workspace (Y, Parent, Lnz, Flag, Pattern) and L (Lp, Lx, Li).
// Every array is written as its length followed by its elements.
func (s *Solver) Save(w io.Writer) error {
	if s.State != FactorReady {
		return ldlErrorf("Save", ErrNotFactored)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, PersistTag)
	fmt.Fprintln(bw, s.N)

	writeFloats(bw, s.A.Value[:s.A.NNZ()])
	writeInts(bw, s.A.RowIndex[:s.A.NNZ()])
	writeInts(bw, s.A.ColStart)
	writeFloats(bw, s.Factor.D)
	writeFloats(bw, s.work.Y)
	writeInts(bw, s.Pattern.Parent)
	writeInts(bw, s.Pattern.Lnz)
	writeInts(bw, s.work.Flag)
	writeInts(bw, s.work.Pattern)
	writeInts(bw, s.Pattern.Lp)
	writeFloats(bw, s.Factor.Lx)
	writeInts(bw, s.Factor.Li)

	if err := bw.Flush(); err != nil {
		return ldlErrorf("Save", err)
	}

	if s.Config.Annotate >= ANNOTATE_SUMMARY {
		s.log.Info().Int("n", s.N).Int("nnz_l", s.Pattern.NNZ()).Msg("solver state written")
	}
	return nil
}

func writeInts(w *bufio.Writer, v []int) {
	w.WriteString(strconv.Itoa(len(v)))
	for _, x := range v {
		w.WriteByte(' ')
		w.WriteString(strconv.Itoa(x))
	}
	w.WriteByte('\n')
}

func writeFloats(w *bufio.Writer, v []float64) {
	w.WriteString(strconv.Itoa(len(v)))
	for _, x := range v {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	w.WriteByte('\n')
}

// Load replaces the solver state with the one read from r and moves the
// Solver to FactorReady. Any failure leaves the Solver Empty.
func (s *Solver) Load(r io.Reader) error {
	loaded, err := readState(r)
	if err != nil {
		s.Destroy()
		return ldlErrorf("Load", err)
	}

	s.N = loaded.n
	s.A = loaded.a
	s.Pattern = loaded.pattern
	s.Factor = loaded.factor
	s.work = loaded.work
	s.solveBuf = nil
	s.State = FactorReady
	s.SingularCol = -1
	s.Elements = loaded.a.NNZ()
	s.Fillins = loaded.pattern.NNZ() - strictUpperCount(loaded.a)

	if s.Config.Annotate >= ANNOTATE_SUMMARY {
		s.log.Info().Int("n", s.N).Int("nnz_l", s.Pattern.NNZ()).Msg("solver state read")
	}
	return nil
}

type persistedState struct {
	n       int
	a       *CSC
	pattern *Pattern
	factor  *Factor
	work    workspace
}

type stateReader struct {
	sc  *bufio.Scanner
	err error
}

func (r *stateReader) token(field string) string {
	if r.err != nil {
		return ""
	}
	if !r.sc.Scan() {
		r.err = r.sc.Err()
		if r.err == nil {
			r.err = io.ErrUnexpectedEOF
		}
		r.err = fmt.Errorf("%w: reading %s: %v", ErrCorruptPersistedState, field, r.err)
		return ""
	}
	return r.sc.Text()
}

func (r *stateReader) int(field string) int {
	tok := r.token(field)
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		r.err = fmt.Errorf("%w: %s: %v", ErrCorruptPersistedState, field, err)
	}
	return v
}

// length reads an array length; want < 0 accepts any non-negative length.
func (r *stateReader) length(field string, want int) int {
	count := r.int(field)
	if r.err != nil {
		return 0
	}
	if count < 0 || (want >= 0 && count != want) {
		r.err = fmt.Errorf("%w: %s has %d entries, expected %d", ErrCorruptPersistedState, field, count, want)
		return 0
	}
	return count
}

func (r *stateReader) ints(field string, want int) []int {
	count := r.length(field, want)
	v := make([]int, 0, minOf(count, 1<<16))
	for i := 0; i < count && r.err == nil; i++ {
		v = append(v, r.int(field))
	}
	return v
}

func (r *stateReader) floats(field string, want int) []float64 {
	count := r.length(field, want)
	v := make([]float64, 0, minOf(count, 1<<16))
	for i := 0; i < count && r.err == nil; i++ {
		tok := r.token(field)
		if r.err != nil {
			break
		}
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			r.err = fmt.Errorf("%w: %s: %v", ErrCorruptPersistedState, field, err)
			break
		}
		v = append(v, x)
	}
	return v
}

func readState(in io.Reader) (*persistedState, error) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	r := &stateReader{sc: sc}

	if tag := r.token("tag"); r.err == nil && tag != PersistTag {
		return nil, fmt.Errorf("%w: tag %q, expected %q", ErrCorruptPersistedState, tag, PersistTag)
	}
	n := r.int("n")
	if r.err == nil && n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrCorruptPersistedState, n)
	}

	st := &persistedState{n: n}
	a := &CSC{N: n}
	a.Value = r.floats("A.Value", -1)
	a.RowIndex = r.ints("A.RowIndex", len(a.Value))
	a.ColStart = r.ints("A.ColStart", n+1)

	d := r.floats("D", n)
	st.work.Y = r.floats("Y", n)
	p := &Pattern{N: n}
	p.Parent = r.ints("Parent", n)
	p.Lnz = r.ints("Lnz", n)
	st.work.Flag = r.ints("Flag", n)
	st.work.Pattern = r.ints("Pattern", n)
	p.Lp = r.ints("Lp", n+1)

	nnzL := 0
	if r.err == nil {
		if nnzL = p.Lp[n]; nnzL < 0 {
			return nil, fmt.Errorf("%w: negative L size %d", ErrCorruptPersistedState, nnzL)
		}
	}
	lx := r.floats("Lx", nnzL)
	li := r.ints("Li", nnzL)
	if r.err != nil {
		return nil, r.err
	}

	if err := a.Validate(); err != nil {
		return nil, corrupt(err)
	}
	if a.NNZ() != len(a.Value) {
		return nil, fmt.Errorf("%w: %d matrix values for %d entries", ErrCorruptPersistedState, len(a.Value), a.NNZ())
	}
	if err := p.validate(); err != nil {
		return nil, corrupt(err)
	}

	// the pattern must be the one the matrix structure implies
	derived := newPattern(n)
	analyze(a, derived, make([]int, n))
	if !derived.Equal(p) {
		return nil, fmt.Errorf("%w: elimination tree does not match the matrix", ErrCorruptPersistedState)
	}

	f := &Factor{N: n, Lp: p.Lp, Li: li, Lx: lx, D: d}
	if err := f.validate(); err != nil {
		return nil, corrupt(err)
	}

	st.work.Count = make([]int, n)
	st.a, st.pattern, st.factor = a, p, f
	return st, nil
}

func corrupt(err error) error {
	if errors.Is(err, ErrCorruptPersistedState) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrCorruptPersistedState, err)
}
