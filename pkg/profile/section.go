package profile

import (
	"fmt"
	"math"
)

// FillSection returns a copy of m with interior NaN holes filled by linear
// interpolation along the cast row and along the depth column, averaged when
// both directions bracket the hole. Cells outside the sampled region stay
// NaN; a section with fewer than three valid cells is returned unchanged.
func FillSection(m Matrix) (Matrix, error) {
	width := m.Grid.Len()
	for i, row := range m.Rows {
		if len(row) != width {
			return Matrix{}, fmt.Errorf("row %d has %d entries, the depth grid has %d levels", i, len(row), width)
		}
	}

	out := NewMatrix(m.Grid, len(m.Rows))
	valid := 0
	for i, row := range m.Rows {
		copy(out.Rows[i], row)
		for _, v := range row {
			if !math.IsNaN(v) {
				valid++
			}
		}
	}
	if valid < 3 {
		return out, nil
	}

	alongCast := make([][]float64, len(m.Rows))
	for i, row := range m.Rows {
		alongCast[i] = fillBracketed(row)
	}

	column := make([]float64, len(m.Rows))
	for j := 0; j < width; j++ {
		for i := range m.Rows {
			column[i] = m.Rows[i][j]
		}
		acrossCasts := fillBracketed(column)
		for i := range m.Rows {
			if !math.IsNaN(m.Rows[i][j]) {
				continue
			}
			a, c := alongCast[i][j], acrossCasts[i]
			switch {
			case !math.IsNaN(a) && !math.IsNaN(c):
				out.Rows[i][j] = (a + c) / 2
			case !math.IsNaN(a):
				out.Rows[i][j] = a
			case !math.IsNaN(c):
				out.Rows[i][j] = c
			}
		}
	}
	return out, nil
}

// fillBracketed linearly fills NaN runs that have a valid sample on both
// sides; runs touching either end are left as NaN.
func fillBracketed(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && prev < i-1 {
			interior(out, nil, prev, i)
		}
		prev = i
	}
	return out
}
