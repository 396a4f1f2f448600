package ldl

import "github.com/rs/zerolog"

const (
	PersistTag = "SparseLDLSolver"

	ANNOTATE_NONE    int = 0
	ANNOTATE_SUMMARY int = 1
	ANNOTATE_FULL    int = 2
)

// State of a Solver. A Solver is always in exactly one of these.
type State int

const (
	Empty State = iota
	PatternReady
	FactorReady
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case PatternReady:
		return "PatternReady"
	case FactorReady:
		return "FactorReady"
	}
	return "Unknown"
}

type Configuration struct {
	AbsThreshold   float64 // |D[k]| <= AbsThreshold is a zero pivot. default 0
	AllowNonFinite bool    // accept NaN or Inf pivots; by default they are zero pivots
	PrinterWidth   int     // Default: 80
	Annotate       int     // 0: None, 1: Summary, 2: Full (every column)

	Logger *zerolog.Logger // nil: no logging
}

// Pattern is the symbolic part of the factorization. It depends only on the
// nonzero structure of the matrix.
type Pattern struct {
	N      int
	Parent []int // elimination tree parent, -1 for roots [0...N)
	Lnz    []int // nonzeros in each column of strict lower L [0...N)
	Lp     []int // column pointers of L [0...N]
}

// Factor is the numeric part of the factorization: A = L*D*L'.
type Factor struct {
	N  int
	Lp []int     // shared with Pattern
	Li []int     // row indices of L [0...Lp[N])
	Lx []float64 // values of L [0...Lp[N])
	D  []float64 // diagonal [0...N)
}

// workspace is scratch memory reused across factorizations of one Solver.
// Contents carry no meaning between calls.
type workspace struct {
	Flag    []int     // visited marks
	Y       []float64 // dense accumulator for the current column
	Pattern []int     // nonzero pattern of the current row of L
	Count   []int     // fill counters of the columns of L
}

// Solver owns the whole factorization state: a copy of the matrix, the
// symbolic pattern, the numeric factor and the scratch workspace.
type Solver struct {
	Config Configuration

	N     int   // Matrix size
	State State // Factoring status

	A       *CSC     // copy of the last matrix, upper triangle
	Pattern *Pattern // valid in PatternReady and FactorReady, never modified once set
	Factor  *Factor  // valid in FactorReady, never modified once set

	work     workspace
	solveBuf []float64

	SingularCol int // column of the last zero pivot, -1 if none

	// Counts
	Elements int // nonzeros of A (stored triangle)
	Fillins  int // nonzeros of L not present in A

	log zerolog.Logger
}
