package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edp1096/ldl"
)

func main() {
	var err error

	S, err := ldl.Create(nil)
	if err != nil {
		panic(err)
	}

	// A = [[4,0,1],[0,3,0],[1,0,2]], upper triangle
	A, err := ldl.NewCSC(3,
		[]int32{0, 1, 2, 4},
		[]int32{0, 1, 0, 2},
		[]float64{4, 3, 1, 2},
	)
	if err != nil {
		panic(err)
	}

	err = S.Invert(A)
	if err != nil {
		panic(err)
	}

	S.Print(os.Stdout, true, true)

	b := []float64{1, 2, 3}

	fmt.Println("RHS b:")
	for i := range b {
		fmt.Printf("b[%d] = %.4f\n", i, b[i])
	}

	x := append([]float64(nil), b...)
	err = S.Solve(x)
	if err != nil {
		panic(err)
	}

	fmt.Println("Solution x:")
	for i := range x {
		fmt.Printf("x[%d] = %.4f\n", i, x[i])
	}

	// persist and solve again from the restored state
	var buf bytes.Buffer
	if err = S.Save(&buf); err != nil {
		panic(err)
	}

	R, _ := ldl.Create(nil)
	if err = R.Load(&buf); err != nil {
		panic(err)
	}

	y := append([]float64(nil), b...)
	if err = R.Solve(y); err != nil {
		panic(err)
	}
	fmt.Printf("Restored solution x[2] = %.4f\n", y[2])

	mant, exp, _ := R.Determinant()
	fmt.Printf("Determinant = %.4fe%d\n", mant, exp)

	S.Destroy()
	R.Destroy()
}
