package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Aggregate computes the per-level mean and sample standard deviation over
// the matrix columns, ignoring missing (NaN) entries. A column with no valid
// entry yields NaN for both; a column with a single valid entry yields that
// value as the mean and NaN as the standard deviation (the sample-stddev
// convention, matching gonum).
func Aggregate(m Matrix) (Stats, error) {
	cols := m.Grid.Len()
	for i, row := range m.Rows {
		if len(row) != cols {
			return Stats{}, fmt.Errorf("row %d has length %d, expected the grid length %d", i, len(row), cols)
		}
	}

	s := Stats{
		Grid:   m.Grid,
		Mean:   make([]float64, cols),
		StdDev: make([]float64, cols),
		Count:  make([]int, cols),
	}

	column := make([]float64, 0, len(m.Rows))
	for j := 0; j < cols; j++ {
		column = column[:0]
		for _, row := range m.Rows {
			if !math.IsNaN(row[j]) {
				column = append(column, row[j])
			}
		}
		s.Count[j] = len(column)
		if len(column) == 0 {
			s.Mean[j] = math.NaN()
			s.StdDev[j] = math.NaN()
			continue
		}
		mean, std := stat.MeanStdDev(column, nil)
		s.Mean[j] = mean
		s.StdDev[j] = std
	}
	return s, nil
}
