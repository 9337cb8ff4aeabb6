package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepthGrid(t *testing.T) {
	t.Run("EvenSpacing", func(t *testing.T) {
		g, err := NewDepthGrid(0, 100, 5)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 25, 50, 75, 100}, g.Levels)
	})

	t.Run("RejectsInvertedRange", func(t *testing.T) {
		_, err := NewDepthGrid(100, 0, 5)
		require.Error(t, err)
	})

	t.Run("RejectsTooFewLevels", func(t *testing.T) {
		_, err := NewDepthGrid(0, 100, 1)
		require.Error(t, err)
	})
}

func TestResample(t *testing.T) {
	t.Run("ReferenceScenario", func(t *testing.T) {
		p := Profile{
			Positions: []float64{10, 20, 30},
			Values:    []float64{15.0, 16.0, 17.0},
		}
		g := DepthGrid{Levels: []float64{10, 15, 20, 25, 30}}
		got, err := Resample(p, g)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{15.0, 15.5, 16.0, 16.5, 17.0}, got, 1e-12)
	})

	t.Run("IdentityOnGridPoints", func(t *testing.T) {
		p := Profile{
			Positions: []float64{0, 25, 50, 75, 100},
			Values:    []float64{5.1, 4.2, 3.3, 2.4, 1.5},
		}
		g, err := NewDepthGrid(0, 100, 5)
		require.NoError(t, err)
		got, err := Resample(p, g)
		require.NoError(t, err)
		assert.InDeltaSlice(t, p.Values, got, 1e-12)
	})

	t.Run("NoOvershootInsideRange", func(t *testing.T) {
		p := Profile{
			Positions: []float64{0, 10, 20, 30},
			Values:    []float64{3.0, 9.0, 1.0, 4.0},
		}
		g, err := NewDepthGrid(0, 30, 31)
		require.NoError(t, err)
		got, err := Resample(p, g)
		require.NoError(t, err)
		for i, v := range got {
			assert.GreaterOrEqual(t, v, 1.0, "grid level %d", i)
			assert.LessOrEqual(t, v, 9.0, "grid level %d", i)
		}
	})

	t.Run("NaNOutsideSourceRange", func(t *testing.T) {
		p := Profile{
			Positions: []float64{20, 30, 40},
			Values:    []float64{16.0, 17.0, 18.0},
		}
		g := DepthGrid{Levels: []float64{0, 10, 20, 30, 40, 50, 60}}
		got, err := Resample(p, g)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.True(t, math.IsNaN(got[5]))
		assert.True(t, math.IsNaN(got[6]))
		assert.InDeltaSlice(t, []float64{16.0, 17.0, 18.0}, got[2:5], 1e-12)
	})

	t.Run("RejectsNonMonotonicPositions", func(t *testing.T) {
		p := Profile{
			Positions: []float64{10, 30, 20},
			Values:    []float64{1.0, 2.0, 3.0},
		}
		g := DepthGrid{Levels: []float64{10, 20, 30}}
		_, err := Resample(p, g)
		var ordErr OrderingError
		require.ErrorAs(t, err, &ordErr)
		assert.Equal(t, 2, ordErr.Index)
	})

	t.Run("RejectsUnfilledProfile", func(t *testing.T) {
		p := Profile{
			Positions: []float64{10, 20, 30},
			Values:    []float64{1.0, math.NaN(), 3.0},
		}
		g := DepthGrid{Levels: []float64{10, 20, 30}}
		_, err := Resample(p, g)
		require.Error(t, err)
	})

	t.Run("RejectsEmptyProfile", func(t *testing.T) {
		g := DepthGrid{Levels: []float64{10, 20, 30}}
		_, err := Resample(Profile{}, g)
		require.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("DuplicatePositionsAllowed", func(t *testing.T) {
		p := Profile{
			Positions: []float64{10, 20, 20, 30},
			Values:    []float64{1.0, 2.0, 4.0, 5.0},
		}
		g := DepthGrid{Levels: []float64{10, 20, 30}}
		got, err := Resample(p, g)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got[0])
		assert.Equal(t, 5.0, got[2])
		// At the duplicated position either sample is acceptable; it must
		// still be one of the observed values, not an average artifact.
		assert.Contains(t, []float64{2.0, 4.0}, got[1])
	})
}
