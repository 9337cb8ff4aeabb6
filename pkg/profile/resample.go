package profile

import (
	"fmt"
	"math"
	"sort"
)

// Resample interpolates the profile onto the depth grid. Grid levels outside
// the source range come back as NaN (no extrapolation). The profile must be
// complete (run it through FillMissing first) and its positions must be
// non-decreasing, otherwise an OrderingError is returned.
func Resample(p Profile, grid DepthGrid) ([]float64, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, ErrInsufficientData
	}

	for i := 0; i < p.Len(); i++ {
		if math.IsNaN(p.Positions[i]) || math.IsNaN(p.Values[i]) {
			return nil, fmt.Errorf("sample %d is incomplete (position %v, value %v); resampling requires a filled profile", i, p.Positions[i], p.Values[i])
		}
		if i > 0 && p.Positions[i] < p.Positions[i-1] {
			return nil, OrderingError{Index: i, Prev: p.Positions[i-1], Curr: p.Positions[i]}
		}
	}

	out := make([]float64, grid.Len())
	lo, hi := p.Positions[0], p.Positions[p.Len()-1]
	for i, level := range grid.Levels {
		if level < lo || level > hi {
			out[i] = math.NaN()
			continue
		}
		out[i] = interpAt(p.Positions, p.Values, level)
	}
	return out, nil
}

// interpAt evaluates the piecewise-linear function defined by (xs, vs) at x.
// xs must be sorted and bracket x.
func interpAt(xs, vs []float64, x float64) float64 {
	idx := sort.SearchFloat64s(xs, x)
	if idx == 0 {
		return vs[0]
	}
	if idx == len(xs) {
		return vs[len(vs)-1]
	}
	x0, x1 := xs[idx-1], xs[idx]
	if x1 == x0 {
		return vs[idx]
	}
	return vs[idx-1] + (vs[idx]-vs[idx-1])*(x-x0)/(x1-x0)
}
