package main

import (
	"os"

	"github.com/edp1096/ldl"
)

func main() {
	var err error

	config := &ldl.Configuration{
		PrinterWidth: 140,
		Annotate:     ldl.ANNOTATE_NONE,
	}

	S, err := ldl.Create(config)
	if err != nil {
		panic(err)
	}

	// upper triangle, 0-based
	A, err := ldl.NewCSCFromTriplets(5,
		[]int{0, 0, 1, 1, 2, 3, 3, 4},
		[]int{0, 3, 1, 2, 2, 3, 4, 4},
		[]float64{10, 4, 20, 5, 30, 40, 6, 50},
	)
	if err != nil {
		panic(err)
	}

	err = S.ComputePattern(A)
	if err != nil {
		panic(err)
	}
	S.Print(os.Stdout, true, true)

	err = S.ComputeFactor(A)
	if err != nil {
		panic(err)
	}
	S.Print(os.Stdout, true, true)
}
