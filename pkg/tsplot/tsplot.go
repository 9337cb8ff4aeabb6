// Package tsplot renders the workshop figures: averaged vertical profiles
// and the T-S diagram with optional density isopycnals.
package tsplot

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jvynn/coessing-2025/pkg/eos"
	"github.com/jvynn/coessing-2025/pkg/profile"
)

var (
	meanColor     = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	envelopeColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x60}
	castColor     = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xb0}
)

// MeanProfile plots the per-level mean of one variable against depth, with
// mean±stddev as an envelope. Depth grows downward.
func MeanProfile(stats profile.Stats, title, xLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "pressure [dbar]"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	mean := validXYs(stats.Mean, stats.Grid.Levels)
	if len(mean) == 0 {
		return nil, fmt.Errorf("the statistics hold no valid level at all")
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return nil, fmt.Errorf("unable to build the mean line: %w", err)
	}
	meanLine.Color = meanColor
	meanLine.Width = vg.Points(2)
	p.Add(meanLine)
	p.Legend.Add("mean", meanLine)

	for _, sign := range []float64{-1, +1} {
		bound := make([]float64, len(stats.Mean))
		for i := range bound {
			bound[i] = stats.Mean[i] + sign*stats.StdDev[i]
		}
		xys := validXYs(bound, stats.Grid.Levels)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("unable to build the envelope line: %w", err)
		}
		line.Color = envelopeColor
		line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(line)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}

// TSDiagram scatters every (salinity, temperature) pair of the two matrices
// and, when an equation of state is given, underlays sigma0 isopycnals
// computed on a regular T-S grid.
func TSDiagram(
	ctx context.Context,
	salinity profile.Matrix,
	temperature profile.Matrix,
	equationOfState eos.EquationOfState,
) (*plot.Plot, error) {
	if len(salinity.Rows) != len(temperature.Rows) {
		return nil, fmt.Errorf("salinity and temperature matrices have different row counts: %d != %d", len(salinity.Rows), len(temperature.Rows))
	}

	p := plot.New()
	p.Title.Text = "T-S diagram"
	p.X.Label.Text = "absolute salinity [g/kg]"
	p.Y.Label.Text = "conservative temperature [°C]"

	var points plotter.XYs
	for r := range salinity.Rows {
		if len(salinity.Rows[r]) != len(temperature.Rows[r]) {
			return nil, fmt.Errorf("row %d of the matrices is misaligned: %d != %d", r, len(salinity.Rows[r]), len(temperature.Rows[r]))
		}
		for c := range salinity.Rows[r] {
			sa, ct := salinity.Rows[r][c], temperature.Rows[r][c]
			if math.IsNaN(sa) || math.IsNaN(ct) {
				continue
			}
			points = append(points, plotter.XY{X: sa, Y: ct})
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("the matrices hold no valid (salinity, temperature) pair")
	}

	if equationOfState != nil {
		if err := addIsopycnals(ctx, p, points, equationOfState); err != nil {
			return nil, err
		}
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("unable to build the scatter: %w", err)
	}
	scatter.GlyphStyle.Color = castColor
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)
	p.Add(plotter.NewGrid())
	return p, nil
}

// addIsopycnals draws lines of constant sigma0 across the data's T-S range,
// tracing each level as a T(S) polyline sampled on a salinity grid.
func addIsopycnals(
	ctx context.Context,
	p *plot.Plot,
	points plotter.XYs,
	equationOfState eos.EquationOfState,
) error {
	sMin, sMax := math.Inf(1), math.Inf(-1)
	tMin, tMax := math.Inf(1), math.Inf(-1)
	for _, pt := range points {
		sMin, sMax = math.Min(sMin, pt.X), math.Max(sMax, pt.X)
		tMin, tMax = math.Min(tMin, pt.Y), math.Max(tMax, pt.Y)
	}
	// Pad the window so the contours extend past the outermost points.
	sPad, tPad := 0.1*(sMax-sMin)+0.05, 0.1*(tMax-tMin)+0.5
	sMin, sMax = sMin-sPad, sMax+sPad
	tMin, tMax = tMin-tPad, tMax+tPad

	const nS = 60
	sa := make([]float64, nS)
	for i := range sa {
		sa[i] = sMin + (sMax-sMin)*float64(i)/float64(nS-1)
	}

	// sigma0 at the window corners bounds the levels worth drawing.
	corners, err := equationOfState.PotentialDensityAnomaly(ctx,
		[]float64{sMin, sMax, sMin, sMax},
		[]float64{tMin, tMin, tMax, tMax},
	)
	if err != nil {
		return fmt.Errorf("unable to evaluate the equation of state: %w", err)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range corners {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	for level := math.Ceil(lo*4) / 4; level <= hi; level += 0.25 {
		var xys plotter.XYs
		for i := 0; i < nS; i++ {
			// Bisect in temperature for the T where sigma0(sa, T) == level.
			t, ok, err := solveTemperature(ctx, equationOfState, sa[i], tMin, tMax, level)
			if err != nil {
				return err
			}
			if ok {
				xys = append(xys, plotter.XY{X: sa[i], Y: t})
			}
		}
		if len(xys) < 2 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("unable to build the isopycnal line: %w", err)
		}
		line.Color = color.Gray{Y: 0xb0}
		p.Add(line)
	}
	return nil
}

// solveTemperature bisects sigma0(sa, t) == level for t in [tMin, tMax];
// ok is false when the level does not cross this temperature range.
func solveTemperature(
	ctx context.Context,
	equationOfState eos.EquationOfState,
	sa, tMin, tMax, level float64,
) (float64, bool, error) {
	at := func(t float64) (float64, error) {
		out, err := equationOfState.PotentialDensityAnomaly(ctx, []float64{sa}, []float64{t})
		if err != nil {
			return 0, err
		}
		return out[0], nil
	}

	// Density decreases with temperature, so f is monotonic in t.
	fLo, err := at(tMin)
	if err != nil {
		return 0, false, err
	}
	fHi, err := at(tMax)
	if err != nil {
		return 0, false, err
	}
	if (fLo-level)*(fHi-level) > 0 {
		return 0, false, nil
	}

	lo, hi := tMin, tMax
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		fMid, err := at(mid)
		if err != nil {
			return 0, false, err
		}
		if (fLo-level)*(fMid-level) <= 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return (lo + hi) / 2, true, nil
}

// WritePNG renders the plot into a PNG file.
func WritePNG(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return fmt.Errorf("unable to save the plot to %q: %w", path, err)
	}
	return nil
}

// validXYs pairs values with levels, skipping NaN entries.
func validXYs(values, levels []float64) plotter.XYs {
	var xys plotter.XYs
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: values[i], Y: levels[i]})
	}
	return xys
}
