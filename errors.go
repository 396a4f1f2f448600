package ldl

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMatrix is returned for a negative dimension, inconsistent
	// column pointers or an out of range row index.
	ErrMalformedMatrix = errors.New("ldl: malformed matrix")

	// ErrZeroPivot is returned when a diagonal entry of D is zero, below the
	// absolute threshold or not finite. The factorization does not pivot.
	ErrZeroPivot = errors.New("ldl: zero pivot")

	// ErrShapeMismatch is returned when a vector length differs from the matrix size.
	ErrShapeMismatch = errors.New("ldl: shape mismatch")

	// ErrCorruptPersistedState is returned by Load for a wrong tag, bad field or short stream.
	ErrCorruptPersistedState = errors.New("ldl: corrupt persisted state")

	// ErrNotFactored is returned by Solve before a successful ComputeFactor or Load.
	ErrNotFactored = errors.New("ldl: matrix is not factored")

	// ErrNilMatrix is returned when a nil matrix or pattern is passed in.
	ErrNilMatrix = errors.New("ldl: nil matrix")
)

// PivotError reports the column at which numeric factorization failed.
// It unwraps to ErrZeroPivot.
type PivotError struct {
	Col   int
	Value float64
}

func (e *PivotError) Error() string {
	return fmt.Sprintf("zero pivot at column %d (d = %g)", e.Col, e.Value)
}

func (e *PivotError) Unwrap() error { return ErrZeroPivot }

// ldlErrorf tags err with the operation that produced it.
func ldlErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
