// Package profile implements the vertical-profile transforms that turn
// irregularly sampled CTD casts into a rectangular matrix on a shared depth
// grid. NaN is the only missing-value sentinel throughout.
package profile

import (
	"fmt"
	"math"
)

// Profile is one physical variable sampled along a single vertical cast.
// Positions (typically pressure in dbar) are aligned index-for-index with
// Values; either slice may contain NaN for missing samples.
type Profile struct {
	Positions []float64
	Values    []float64
}

func (p Profile) Len() int {
	return len(p.Values)
}

func (p Profile) validate() error {
	if len(p.Positions) != len(p.Values) {
		return fmt.Errorf("positions and values have different lengths: %d != %d", len(p.Positions), len(p.Values))
	}
	return nil
}

// DepthGrid is the shared target grid for a batch: a strictly increasing
// sequence of depth (pressure) levels, identical across all variables and
// casts of the batch.
type DepthGrid struct {
	Levels []float64
}

// NewDepthGrid builds a grid of `count` evenly spaced levels spanning
// [min, max] inclusive.
func NewDepthGrid(min, max float64, count int) (DepthGrid, error) {
	if count < 2 {
		return DepthGrid{}, fmt.Errorf("a depth grid requires at least 2 levels, got %d", count)
	}
	if !(min < max) {
		return DepthGrid{}, fmt.Errorf("invalid depth range: min (%v) must be below max (%v)", min, max)
	}
	levels := make([]float64, count)
	step := (max - min) / float64(count-1)
	for i := range levels {
		levels[i] = min + float64(i)*step
	}
	levels[count-1] = max
	return DepthGrid{Levels: levels}, nil
}

func (g DepthGrid) Len() int {
	return len(g.Levels)
}

// Matrix holds resampled values for a batch of casts: one row per cast, one
// column per depth-grid level. Row order follows the input cast order.
type Matrix struct {
	Grid DepthGrid
	Rows [][]float64
}

// NewMatrix allocates a matrix for `casts` rows on grid g, with every entry
// initialized to NaN (missing).
func NewMatrix(g DepthGrid, casts int) Matrix {
	rows := make([][]float64, casts)
	for i := range rows {
		row := make([]float64, g.Len())
		for j := range row {
			row[j] = math.NaN()
		}
		rows[i] = row
	}
	return Matrix{Grid: g, Rows: rows}
}

// SetRow stores the resampled values for cast `i`. The row must have exactly
// one entry per grid level.
func (m Matrix) SetRow(i int, values []float64) error {
	if i < 0 || i >= len(m.Rows) {
		return fmt.Errorf("row %d is out of range [0, %d)", i, len(m.Rows))
	}
	if len(values) != m.Grid.Len() {
		return fmt.Errorf("row length %d does not match the grid length %d", len(values), m.Grid.Len())
	}
	copy(m.Rows[i], values)
	return nil
}

// Stats are per-level aggregate statistics over a Matrix. A level where no
// cast had a value holds NaN for both Mean and StdDev and a Count of 0.
type Stats struct {
	Grid   DepthGrid
	Mean   []float64
	StdDev []float64
	Count  []int
}
