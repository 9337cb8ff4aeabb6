// Package npmodel implements a two-box nutrient-phytoplankton (NP) model:
//
//	dP/dt = mu * N/(N + kN) * P - m * P
//	dN/dt = -mu * N/(N + kN) * P + m * P
//
// Dead phytoplankton is fully remineralized, so total nitrogen is conserved.
package npmodel

import (
	"fmt"
)

// Params are the biological rate constants.
type Params struct {
	GrowthRate     float64 // mu, maximum specific growth rate (1/day)
	HalfSaturation float64 // kN, nutrient half-saturation (mmol N/m^3)
	Mortality      float64 // m, linear mortality rate (1/day)
}

// DefaultParams are the workshop's baseline run.
func DefaultParams() Params {
	return Params{
		GrowthRate:     1.0,
		HalfSaturation: 0.5,
		Mortality:      0.1,
	}
}

func (p Params) validate() error {
	if p.GrowthRate <= 0 {
		return fmt.Errorf("the growth rate must be positive, got %v", p.GrowthRate)
	}
	if p.HalfSaturation <= 0 {
		return fmt.Errorf("the half-saturation constant must be positive, got %v", p.HalfSaturation)
	}
	if p.Mortality < 0 {
		return fmt.Errorf("the mortality rate must not be negative, got %v", p.Mortality)
	}
	return nil
}

// State is the instantaneous content of the two boxes (mmol N/m^3).
type State struct {
	Nutrient      float64
	Phytoplankton float64
}

// Series is the integrated trajectory, sample i taken at Time[i] days.
type Series struct {
	Time          []float64
	Nutrient      []float64
	Phytoplankton []float64
}

// Integrate runs `steps` forward-Euler steps of size stepDays starting from
// initial, returning the trajectory including the initial state (so the
// series has steps+1 samples).
func Integrate(params Params, initial State, stepDays float64, steps int) (Series, error) {
	if err := params.validate(); err != nil {
		return Series{}, err
	}
	if stepDays <= 0 {
		return Series{}, fmt.Errorf("the step must be positive, got %v days", stepDays)
	}
	if steps < 1 {
		return Series{}, fmt.Errorf("at least one step is required, got %d", steps)
	}
	if initial.Nutrient < 0 || initial.Phytoplankton < 0 {
		return Series{}, fmt.Errorf("initial concentrations must not be negative: N=%v, P=%v", initial.Nutrient, initial.Phytoplankton)
	}

	s := Series{
		Time:          make([]float64, steps+1),
		Nutrient:      make([]float64, steps+1),
		Phytoplankton: make([]float64, steps+1),
	}

	n, p := initial.Nutrient, initial.Phytoplankton
	s.Nutrient[0], s.Phytoplankton[0] = n, p

	for i := 1; i <= steps; i++ {
		uptake := params.GrowthRate * n / (n + params.HalfSaturation) * p
		remineralized := params.Mortality * p

		n += stepDays * (remineralized - uptake)
		p += stepDays * (uptake - remineralized)

		// Euler can overshoot into negative concentrations when the step
		// is too coarse; clip and keep the total, rather than letting a
		// negative pool feed back into the uptake term.
		if n < 0 {
			p += n
			n = 0
		}
		if p < 0 {
			n += p
			p = 0
		}

		s.Time[i] = float64(i) * stepDays
		s.Nutrient[i] = n
		s.Phytoplankton[i] = p
	}
	return s, nil
}

// TotalNitrogen returns N+P at sample i.
func (s Series) TotalNitrogen(i int) float64 {
	return s.Nutrient[i] + s.Phytoplankton[i]
}

// Equilibrium returns the analytic steady state the model relaxes to for a
// given total nitrogen: uptake balances mortality at N* = kN*m/(mu-m). When
// mortality exceeds growth there is no coexistence state and everything ends
// up in the nutrient pool.
func (p Params) Equilibrium(totalNitrogen float64) State {
	if p.Mortality >= p.GrowthRate {
		return State{Nutrient: totalNitrogen}
	}
	nStar := p.HalfSaturation * p.Mortality / (p.GrowthRate - p.Mortality)
	if nStar >= totalNitrogen {
		return State{Nutrient: totalNitrogen}
	}
	return State{
		Nutrient:      nStar,
		Phytoplankton: totalNitrogen - nStar,
	}
}
