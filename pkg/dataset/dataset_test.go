package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastValidate(t *testing.T) {
	nan := math.NaN()

	t.Run("Valid", func(t *testing.T) {
		c := &Cast{
			Station:     "st001",
			Pressure:    []float64{0, 10, 20},
			Temperature: []float64{28.0, 27.5, nan},
			Salinity:    []float64{34.9, 35.0, 35.1},
		}
		require.NoError(t, c.validate())
	})

	t.Run("NoPressure", func(t *testing.T) {
		c := &Cast{Station: "st001"}
		require.Error(t, c.validate())
	})

	t.Run("AllPressureMissing", func(t *testing.T) {
		c := &Cast{
			Station:     "st001",
			Pressure:    []float64{nan, nan},
			Temperature: []float64{1, 2},
			Salinity:    []float64{1, 2},
		}
		require.Error(t, c.validate())
	})

	t.Run("MisalignedSeries", func(t *testing.T) {
		c := &Cast{
			Station:     "st001",
			Pressure:    []float64{0, 10},
			Temperature: []float64{28.0},
			Salinity:    []float64{34.9, 35.0},
		}
		require.Error(t, c.validate())
	})
}

func TestToFloat64s(t *testing.T) {
	t.Run("Float32Series", func(t *testing.T) {
		got, err := toFloat64s([]float32{1.5, 2.5})
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, 2.5}, got)
	})

	t.Run("Float64SeriesIsCopied", func(t *testing.T) {
		in := []float64{1, 2}
		got, err := toFloat64s(in)
		require.NoError(t, err)
		got[0] = 9
		assert.Equal(t, 1.0, in[0])
	})

	t.Run("Scalar", func(t *testing.T) {
		got, err := toFloat64s(float32(5.5))
		require.NoError(t, err)
		assert.Equal(t, []float64{5.5}, got)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := toFloat64s("not numbers")
		require.Error(t, err)
	})
}

func TestRetrievalError(t *testing.T) {
	inner := errors.New("connection reset")
	err := RetrievalError{Location: "https://example.org/x.nc", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "https://example.org/x.nc")
}
