package ldl

import (
	"fmt"
)

// Vector is read/write access to a dense vector owned by the caller.
type Vector interface {
	Len() int
	AtVec(i int) float64
	SetVec(i int, v float64)
}

// Solve overwrites rhs with the solution of L*D*L' x = rhs.
// The vector is not touched when its length does not match.
func (f *Factor) Solve(rhs []float64) error {
	if err := f.checkSolve(len(rhs)); err != nil {
		return ldlErrorf("Solve", err)
	}
	f.LSolve(rhs)
	f.DSolve(rhs)
	f.LTSolve(rhs)
	return nil
}

func (f *Factor) checkSolve(n int) error {
	if f == nil {
		return ErrNotFactored
	}
	if n != f.N {
		return fmt.Errorf("%w: vector length %d, matrix size %d", ErrShapeMismatch, n, f.N)
	}
	return nil
}

// LSolve solves L x = b in place. L has a unit diagonal.
func (f *Factor) LSolve(x []float64) {
	for j := 0; j < f.N; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for p := f.Lp[j]; p < f.Lp[j+1]; p++ {
			x[f.Li[p]] -= f.Lx[p] * xj
		}
	}
}

// DSolve solves D x = b in place.
func (f *Factor) DSolve(x []float64) {
	for j := 0; j < f.N; j++ {
		x[j] /= f.D[j]
	}
}

// LTSolve solves L' x = b in place without forming L'.
func (f *Factor) LTSolve(x []float64) {
	for j := f.N - 1; j >= 0; j-- {
		xj := x[j]
		for p := f.Lp[j]; p < f.Lp[j+1]; p++ {
			xj -= f.Lx[p] * x[f.Li[p]]
		}
		x[j] = xj
	}
}

// SolveVec solves in place on a caller owned vector, using buf as staging
// memory of length f.N.
func (f *Factor) SolveVec(v Vector, buf []float64) error {
	if err := f.checkSolve(v.Len()); err != nil {
		return ldlErrorf("SolveVec", err)
	}
	if len(buf) < f.N {
		buf = make([]float64, f.N)
	}
	x := buf[:f.N]
	for i := range x {
		x[i] = v.AtVec(i)
	}
	f.LSolve(x)
	f.DSolve(x)
	f.LTSolve(x)
	for i, xi := range x {
		v.SetVec(i, xi)
	}
	return nil
}

// DenseVector adapts a []float64 to Vector.
type DenseVector []float64

func (v DenseVector) Len() int                { return len(v) }
func (v DenseVector) AtVec(i int) float64     { return v[i] }
func (v DenseVector) SetVec(i int, x float64) { v[i] = x }
