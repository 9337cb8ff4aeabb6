package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jvynn/coessing-2025/pkg/npmodel"
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	params := npmodel.DefaultParams()
	pflag.Float64Var(&params.GrowthRate, "mu", params.GrowthRate, "maximum specific growth rate (1/day)")
	pflag.Float64Var(&params.HalfSaturation, "kn", params.HalfSaturation, "nutrient half-saturation (mmol N/m³)")
	pflag.Float64Var(&params.Mortality, "mortality", params.Mortality, "linear mortality rate (1/day)")
	n0 := pflag.Float64("n0", 2.0, "initial nutrient concentration (mmol N/m³)")
	p0 := pflag.Float64("p0", 0.1, "initial phytoplankton concentration (mmol N/m³)")
	step := pflag.Float64("step", 0.01, "Euler step (days)")
	days := pflag.Float64("days", 30, "how long to integrate (days)")
	csvPath := pflag.String("csv", "npmodel.csv", "where to write the trajectory table")
	pngPath := pflag.String("png", "npmodel.png", "where to write the trajectory figure")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	steps := int(*days / *step)
	initial := npmodel.State{Nutrient: *n0, Phytoplankton: *p0}
	series, err := npmodel.Integrate(params, initial, *step, steps)
	assertNoError(err)

	eq := params.Equilibrium(*n0 + *p0)
	logger.Infof(ctx, "integrated %d steps; analytic equilibrium: N=%.4f, P=%.4f", steps, eq.Nutrient, eq.Phytoplankton)

	assertNoError(writeSeriesCSV(*csvPath, series))
	assertNoError(writeSeriesPNG(*pngPath, series))
	fmt.Printf("wrote %s and %s\n", *csvPath, *pngPath)
}

func writeSeriesCSV(path string, s npmodel.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"time_days", "nutrient", "phytoplankton"}); err != nil {
		return err
	}
	for i := range s.Time {
		record := []string{
			strconv.FormatFloat(s.Time[i], 'g', -1, 64),
			strconv.FormatFloat(s.Nutrient[i], 'g', -1, 64),
			strconv.FormatFloat(s.Phytoplankton[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSeriesPNG(path string, s npmodel.Series) error {
	p := plot.New()
	p.Title.Text = "NP model"
	p.X.Label.Text = "time [days]"
	p.Y.Label.Text = "concentration [mmol N/m³]"

	nutrient := make(plotter.XYs, len(s.Time))
	phyto := make(plotter.XYs, len(s.Time))
	for i := range s.Time {
		nutrient[i] = plotter.XY{X: s.Time[i], Y: s.Nutrient[i]}
		phyto[i] = plotter.XY{X: s.Time[i], Y: s.Phytoplankton[i]}
	}

	nLine, err := plotter.NewLine(nutrient)
	if err != nil {
		return err
	}
	nLine.Color = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	pLine, err := plotter.NewLine(phyto)
	if err != nil {
		return err
	}
	pLine.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

	p.Add(nLine, pLine, plotter.NewGrid())
	p.Legend.Add("nutrient", nLine)
	p.Legend.Add("phytoplankton", pLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("unable to save the plot to %q: %w", path, err)
	}
	return nil
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
