package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/edp1096/ldl"
)

// spyPoints returns the positions of the nonzeros of the symmetric matrix
// and of the fill-in entries of L, with row 0 at the top.
func spyPoints(s *ldl.Solver) (matrix, fill plotter.XYs) {
	n := s.GetSize()
	inA := make(map[[2]int]bool)

	for j := 0; j < n; j++ {
		rows, _ := s.A.Column(j)
		for _, i := range rows {
			inA[[2]int{i, j}] = true
			matrix = append(matrix, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			if i != j {
				matrix = append(matrix, plotter.XY{X: float64(i), Y: float64(n - 1 - j)})
			}
		}
	}

	if s.Factor == nil {
		return matrix, fill
	}
	for j := 0; j < n; j++ {
		for p := s.Factor.Lp[j]; p < s.Factor.Lp[j+1]; p++ {
			i := s.Factor.Li[p]
			// L(i,j) is fill-in when A(j,i) is not stored
			if !inA[[2]int{j, i}] {
				fill = append(fill, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			}
		}
	}
	return matrix, fill
}

func spyPlot(s *ldl.Solver, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (reversed)"

	matrix, fill := spyPoints(s)
	series := []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{
		{"A", matrix, color.RGBA{B: 200, A: 255}},
		{"fill-in of L", fill, color.RGBA{R: 220, A: 255}},
	}

	for _, ser := range series {
		if len(ser.xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(ser.xys)
		if err != nil {
			return nil, fmt.Errorf("spy %s: %w", ser.name, err)
		}
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Color = ser.color
		p.Add(sc)
		p.Legend.Add(ser.name, sc)
	}
	return p, nil
}

func saveSpy(s *ldl.Solver, title, path string) error {
	p, err := spyPlot(s, title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
