// Package eos defines the equation-of-state collaborator: anything that can
// turn matched absolute-salinity and conservative-temperature sequences into
// a potential-density-anomaly sequence of the same length and alignment.
package eos

import "context"

// EquationOfState is a pure function over its inputs: no side effects, no
// internal state. Implementations live under implementations/.
type EquationOfState interface {
	// PotentialDensityAnomaly returns sigma0 (kg/m^3, referenced to the
	// surface) for each (sa[i], ct[i]) pair. sa is absolute salinity in
	// g/kg, ct conservative temperature in degrees Celsius. NaN inputs
	// yield NaN outputs at the same index.
	PotentialDensityAnomaly(ctx context.Context, sa, ct []float64) ([]float64, error)
}
