// Package linear implements the equation of state as the linearized
// approximation commonly used in teaching and in idealized models:
//
//	sigma0 = sigma0Ref + rho0*(beta*(SA - SA0) - alpha*(CT - CT0))
//
// with constant thermal-expansion and haline-contraction coefficients. A
// full TEOS-10 implementation can be swapped in behind the same interface.
package linear

import (
	"context"
	"fmt"
	"math"

	"github.com/jvynn/coessing-2025/pkg/eos"
)

type EOS struct {
	// Reference state the linearization is anchored to.
	Rho0      float64 // kg/m^3
	Sigma0Ref float64 // kg/m^3, sigma0 at (SA0, CT0)
	SA0       float64 // g/kg
	CT0       float64 // degC
	Alpha     float64 // 1/K
	Beta      float64 // kg/g
}

var _ eos.EquationOfState = (*EOS)(nil)

// New returns the equation of state anchored to a typical tropical-Atlantic
// surface state.
func New() *EOS {
	return &EOS{
		Rho0:      1025.0,
		Sigma0Ref: 25.0,
		SA0:       35.0,
		CT0:       20.0,
		Alpha:     2.0e-4,
		Beta:      7.6e-4,
	}
}

func (e *EOS) PotentialDensityAnomaly(
	ctx context.Context,
	sa []float64,
	ct []float64,
) ([]float64, error) {
	if len(sa) != len(ct) {
		return nil, fmt.Errorf("salinity and temperature have different lengths: %d != %d", len(sa), len(ct))
	}

	out := make([]float64, len(sa))
	for i := range out {
		if math.IsNaN(sa[i]) || math.IsNaN(ct[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = e.Sigma0Ref + e.Rho0*(e.Beta*(sa[i]-e.SA0)-e.Alpha*(ct[i]-e.CT0))
	}
	return out, nil
}
