package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	nan := math.NaN()
	g := DepthGrid{Levels: []float64{0, 10, 20}}

	t.Run("IgnoresMissingEntries", func(t *testing.T) {
		m := Matrix{Grid: g, Rows: [][]float64{
			{1.0, 2.0, nan},
			{3.0, nan, nan},
			{5.0, 4.0, nan},
		}}
		s, err := Aggregate(m)
		require.NoError(t, err)

		assert.Equal(t, []int{3, 2, 0}, s.Count)
		assert.InDelta(t, 3.0, s.Mean[0], 1e-12)
		assert.InDelta(t, 2.0, s.StdDev[0], 1e-12)
		assert.InDelta(t, 3.0, s.Mean[1], 1e-12)
		assert.True(t, math.IsNaN(s.Mean[2]))
		assert.True(t, math.IsNaN(s.StdDev[2]))
	})

	t.Run("SingleValueColumn", func(t *testing.T) {
		m := Matrix{Grid: g, Rows: [][]float64{
			{nan, 7.5, nan},
			{nan, nan, nan},
		}}
		s, err := Aggregate(m)
		require.NoError(t, err)

		assert.Equal(t, 7.5, s.Mean[1])
		// Sample standard deviation of a single observation is undefined.
		assert.True(t, math.IsNaN(s.StdDev[1]))
		assert.True(t, math.IsNaN(s.Mean[0]))
		assert.True(t, math.IsNaN(s.Mean[2]))
	})

	t.Run("RaggedMatrixRejected", func(t *testing.T) {
		m := Matrix{Grid: g, Rows: [][]float64{
			{1.0, 2.0, 3.0},
			{1.0, 2.0},
		}}
		_, err := Aggregate(m)
		require.Error(t, err)
	})

	t.Run("EmptyMatrix", func(t *testing.T) {
		s, err := Aggregate(Matrix{Grid: g})
		require.NoError(t, err)
		for j := range s.Mean {
			assert.True(t, math.IsNaN(s.Mean[j]))
			assert.True(t, math.IsNaN(s.StdDev[j]))
			assert.Zero(t, s.Count[j])
		}
	})
}

func TestNewMatrix(t *testing.T) {
	g := DepthGrid{Levels: []float64{0, 5, 10}}
	m := NewMatrix(g, 2)
	require.Len(t, m.Rows, 2)
	for _, row := range m.Rows {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.True(t, math.IsNaN(v))
		}
	}

	t.Run("SetRow", func(t *testing.T) {
		require.NoError(t, m.SetRow(0, []float64{1, 2, 3}))
		assert.Equal(t, []float64{1, 2, 3}, m.Rows[0])
		require.Error(t, m.SetRow(5, []float64{1, 2, 3}))
		require.Error(t, m.SetRow(1, []float64{1, 2}))
	})
}
