package profile

import (
	"fmt"
	"math"
)

// FillSeries replaces every NaN in values with the linear interpolation
// between its nearest valid neighbors along the abscissa x (nil means the
// sample index). Leading and trailing gaps are extended flat. The input is
// never mutated. Returns ErrInsufficientData when values holds no valid
// sample.
func FillSeries(x, values []float64) ([]float64, error) {
	if x != nil && len(x) != len(values) {
		return nil, fmt.Errorf("abscissa and values have different lengths: %d != %d", len(x), len(values))
	}

	out := make([]float64, len(values))
	copy(out, values)

	// Index of the previous valid sample, -1 before the first one.
	prev := -1
	for i := 0; i < len(out); i++ {
		if !math.IsNaN(out[i]) {
			if prev < i-1 && prev >= 0 {
				interior(out, x, prev, i)
			}
			if prev == -1 {
				// Leading gap: extend the first valid value flat.
				for j := 0; j < i; j++ {
					out[j] = out[i]
				}
			}
			prev = i
		}
	}
	if prev == -1 {
		return nil, ErrInsufficientData
	}
	// Trailing gap: extend the last valid value flat.
	for j := prev + 1; j < len(out); j++ {
		out[j] = out[prev]
	}

	return out, nil
}

// interior fills out[lo+1:hi] by linear interpolation between the valid
// samples at lo and hi.
func interior(out, x []float64, lo, hi int) {
	xAt := func(i int) float64 {
		if x == nil {
			return float64(i)
		}
		return x[i]
	}
	x0, x1 := xAt(lo), xAt(hi)
	v0, v1 := out[lo], out[hi]
	for j := lo + 1; j < hi; j++ {
		// Fraction of the way through the gap, by index.
		t := float64(j-lo) / float64(hi-lo)
		if x1 != x0 {
			xj := xAt(j)
			if x != nil && math.IsNaN(xj) {
				// Unusable abscissa inside the gap: keep the index fraction.
				xj = x0 + (x1-x0)*t
			}
			t = (xj - x0) / (x1 - x0)
		}
		out[j] = v0 + (v1-v0)*t
	}
}

// FillMissing returns a copy of p with every NaN filled in: first the
// positions (over the sample index), then the values (over the completed
// positions). Returns ErrInsufficientData if either series has no valid
// sample.
func FillMissing(p Profile) (Profile, error) {
	if err := p.validate(); err != nil {
		return Profile{}, err
	}

	positions, err := FillSeries(nil, p.Positions)
	if err != nil {
		return Profile{}, fmt.Errorf("unable to fill the position series: %w", err)
	}
	values, err := FillSeries(positions, p.Values)
	if err != nil {
		return Profile{}, fmt.Errorf("unable to fill the value series: %w", err)
	}
	return Profile{Positions: positions, Values: values}, nil
}
