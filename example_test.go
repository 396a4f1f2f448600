package ldl_test

import (
	"bytes"
	"fmt"

	"github.com/edp1096/ldl"
)

func Example() {
	// upper triangle of [[4,0,1],[0,3,0],[1,0,2]]
	a, err := ldl.NewCSC(3, []int32{0, 1, 2, 4}, []int32{0, 1, 0, 2}, []float64{4, 3, 1, 2})
	if err != nil {
		panic(err)
	}

	s, _ := ldl.Create(nil)
	if err := s.Invert(a); err != nil {
		panic(err)
	}

	x := []float64{1, 2, 3}
	if err := s.Solve(x); err != nil {
		panic(err)
	}
	fmt.Printf("x = %.4f %.4f %.4f\n", x[0], x[1], x[2])

	mant, exp, _ := s.Determinant()
	fmt.Printf("det = %.2fe%d\n", mant, exp)
	// Output:
	// x = -0.1429 0.6667 1.5714
	// det = 2.10e1
}

func ExampleSolver_Save() {
	a, _ := ldl.NewCSCFromTriplets(2, []int{0, 0, 1}, []int{0, 1, 1}, []float64{2, 1, 2})

	s, _ := ldl.Create(nil)
	_ = s.Invert(a)

	var buf bytes.Buffer
	_ = s.Save(&buf)

	restored, _ := ldl.Create(nil)
	if err := restored.Load(&buf); err != nil {
		panic(err)
	}

	x := []float64{3, 3}
	_ = restored.Solve(x)
	fmt.Println(restored.State, x)
	// Output:
	// FactorReady [1 1]
}
