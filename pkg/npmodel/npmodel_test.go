package npmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate(t *testing.T) {
	t.Run("ConservesTotalNitrogen", func(t *testing.T) {
		initial := State{Nutrient: 2.0, Phytoplankton: 0.1}
		s, err := Integrate(DefaultParams(), initial, 0.01, 5000)
		require.NoError(t, err)

		total := initial.Nutrient + initial.Phytoplankton
		for i := range s.Time {
			assert.InDelta(t, total, s.TotalNitrogen(i), 1e-9, "sample %d", i)
		}
	})

	t.Run("RelaxesToEquilibrium", func(t *testing.T) {
		params := DefaultParams()
		initial := State{Nutrient: 2.0, Phytoplankton: 0.1}
		s, err := Integrate(params, initial, 0.01, 10000)
		require.NoError(t, err)

		want := params.Equilibrium(initial.Nutrient + initial.Phytoplankton)
		last := len(s.Time) - 1
		assert.InDelta(t, want.Nutrient, s.Nutrient[last], 1e-3)
		assert.InDelta(t, want.Phytoplankton, s.Phytoplankton[last], 1e-3)
	})

	t.Run("BloomThenDecline", func(t *testing.T) {
		params := DefaultParams()
		s, err := Integrate(params, State{Nutrient: 2.0, Phytoplankton: 0.05}, 0.01, 2000)
		require.NoError(t, err)

		// With plenty of nutrient the stock grows first.
		assert.Greater(t, s.Phytoplankton[100], s.Phytoplankton[0])
		// And the nutrient pool drains accordingly.
		assert.Less(t, s.Nutrient[100], s.Nutrient[0])
	})

	t.Run("MortalityAboveGrowthKillsTheBloom", func(t *testing.T) {
		params := Params{GrowthRate: 0.2, HalfSaturation: 0.5, Mortality: 0.5}
		s, err := Integrate(params, State{Nutrient: 1.0, Phytoplankton: 0.5}, 0.01, 20000)
		require.NoError(t, err)

		last := len(s.Time) - 1
		assert.InDelta(t, 0.0, s.Phytoplankton[last], 1e-2)
		assert.InDelta(t, 1.5, s.Nutrient[last], 1e-2)
	})

	t.Run("SeriesShape", func(t *testing.T) {
		s, err := Integrate(DefaultParams(), State{Nutrient: 1, Phytoplankton: 1}, 0.5, 10)
		require.NoError(t, err)
		require.Len(t, s.Time, 11)
		assert.Equal(t, 0.0, s.Time[0])
		assert.InDelta(t, 5.0, s.Time[10], 1e-12)
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		_, err := Integrate(Params{GrowthRate: 0, HalfSaturation: 1, Mortality: 0}, State{}, 0.1, 10)
		require.Error(t, err)
		_, err = Integrate(DefaultParams(), State{}, -0.1, 10)
		require.Error(t, err)
		_, err = Integrate(DefaultParams(), State{}, 0.1, 0)
		require.Error(t, err)
		_, err = Integrate(DefaultParams(), State{Nutrient: -1}, 0.1, 10)
		require.Error(t, err)
	})
}

func TestEquilibrium(t *testing.T) {
	t.Run("Coexistence", func(t *testing.T) {
		params := DefaultParams() // mu=1, kN=0.5, m=0.1
		eq := params.Equilibrium(2.1)
		// N* = 0.5*0.1/0.9
		assert.InDelta(t, 0.5*0.1/0.9, eq.Nutrient, 1e-12)
		assert.InDelta(t, 2.1-0.5*0.1/0.9, eq.Phytoplankton, 1e-12)
	})

	t.Run("NoCoexistenceWhenMortalityWins", func(t *testing.T) {
		params := Params{GrowthRate: 0.1, HalfSaturation: 0.5, Mortality: 0.2}
		eq := params.Equilibrium(1.0)
		assert.Equal(t, State{Nutrient: 1.0}, eq)
	})

	t.Run("NotEnoughNitrogenForCoexistence", func(t *testing.T) {
		params := Params{GrowthRate: 0.2, HalfSaturation: 5.0, Mortality: 0.1}
		// N* = 5*0.1/0.1 = 5 > total
		eq := params.Equilibrium(1.0)
		assert.Equal(t, State{Nutrient: 1.0}, eq)
	})
}
