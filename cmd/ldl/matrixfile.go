package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edp1096/ldl"
)

// problem is a matrix file: description, size, one-based "row col value"
// triplets terminated by "0 0 0", then an optional right-hand side.
type problem struct {
	description string
	size        int
	matrix      *ldl.CSC
	rhs         []float64 // nil when the file has none
}

func readProblem(r io.Reader, lower bool) (*problem, error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	next := func() (string, bool) {
		for scanner.Scan() {
			lineNumber++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	line, ok := next()
	if !ok {
		return nil, fmt.Errorf("empty file")
	}
	if strings.HasPrefix(line, "Starting") {
		if line, ok = next(); !ok {
			return nil, fmt.Errorf("missing description")
		}
	}
	pb := &problem{description: line}

	line, ok = next()
	if !ok {
		return nil, fmt.Errorf("missing size information")
	}
	fields := strings.Fields(line)
	size, err := strconv.Atoi(fields[0])
	if err != nil || size < 0 {
		return nil, fmt.Errorf("invalid size value at line %d: %q", lineNumber, fields[0])
	}
	if len(fields) > 1 && strings.ToLower(fields[1]) == "complex" {
		return nil, fmt.Errorf("complex matrices are not supported")
	}
	pb.size = size

	var rows, cols []int
	var values []float64
	matrixEnded := false
	rhsValues := make([]float64, 0, size)

	for {
		line, ok = next()
		if !ok {
			break
		}
		fields = strings.Fields(line)

		if matrixEnded {
			if strings.HasPrefix(line, "Beginning") {
				continue
			}
			v, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, fmt.Errorf("syntax error in rhs at line %d: %v", lineNumber, err)
			}
			rhsValues = append(rhsValues, v)
			continue
		}

		if len(fields) < 3 {
			return nil, fmt.Errorf("syntax error at line %d: expected row col value", lineNumber)
		}
		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		val, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("syntax error at line %d: %q", lineNumber, line)
		}

		// 0 0 0 check
		if row == 0 && col == 0 {
			matrixEnded = true
			continue
		}
		if lower {
			row, col = col, row
		}
		rows = append(rows, row-1)
		cols = append(cols, col-1)
		values = append(values, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	pb.matrix, err = ldl.NewCSCFromTriplets(size, rows, cols, values)
	if err != nil {
		return nil, err
	}

	if len(rhsValues) > 0 {
		if len(rhsValues) < size {
			return nil, fmt.Errorf("rhs has %d values, matrix size is %d", len(rhsValues), size)
		}
		pb.rhs = rhsValues[:size]
	}
	return pb, nil
}

// readVector reads whitespace separated values.
func readVector(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var v []float64
	for scanner.Scan() {
		x, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %v", len(v)+1, err)
		}
		v = append(v, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading vector: %v", err)
	}
	return v, nil
}
