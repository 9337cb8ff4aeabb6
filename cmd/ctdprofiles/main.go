package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"

	"github.com/jvynn/coessing-2025/pkg/batch"
	"github.com/jvynn/coessing-2025/pkg/dataset"
	_ "github.com/jvynn/coessing-2025/pkg/dataset/backends/httpfetch"
	_ "github.com/jvynn/coessing-2025/pkg/dataset/backends/localfile"
	"github.com/jvynn/coessing-2025/pkg/eos"
	"github.com/jvynn/coessing-2025/pkg/eos/implementations/linear"
	"github.com/jvynn/coessing-2025/pkg/profile"
	"github.com/jvynn/coessing-2025/pkg/tsplot"
)

func main() {
	cfg, err := batch.FromEnv("ctd")
	assertNoError(err)

	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	manifestPath := pflag.String("manifest", "manifest.yaml", "path to the cast manifest")
	outDir := pflag.String("out", "out", "directory for the rendered figures and tables")
	pflag.StringVar(&cfg.Category, "category", cfg.Category, "manifest category to process")
	pflag.Float64Var(&cfg.DepthMin, "depth-min", cfg.DepthMin, "top of the depth grid (dbar)")
	pflag.Float64Var(&cfg.DepthMax, "depth-max", cfg.DepthMax, "bottom of the depth grid (dbar)")
	pflag.IntVar(&cfg.DepthCount, "depth-count", cfg.DepthCount, "number of depth-grid levels")
	pflag.BoolVar(&cfg.IncludeDensityContour, "density", cfg.IncludeDensityContour, "compute density and draw isopycnals")
	pflag.IntVar(&cfg.Parallelism, "parallelism", cfg.Parallelism, "how many casts to process at once")
	fillHoles := pflag.Bool("fill-holes", false, "interpolate interior gaps in the section before the scatter diagram")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	manifest, err := dataset.LoadManifest(*manifestPath)
	assertNoError(err)
	assertNoError(os.MkdirAll(*outDir, 0o755))

	progressCtx, progressDone := context.WithCancel(ctx)
	observability.Go(progressCtx, func(ctx context.Context) {
		t := time.NewTicker(5 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Infof(ctx, "still processing category %q...", cfg.Category)
			}
		}
	})

	result, err := batch.Run(ctx, cfg, manifest, dataset.Load, linear.New())
	progressDone()
	assertNoError(err)
	if result.Skipped != nil {
		logger.Warnf(ctx, "some casts were skipped: %v", result.Skipped)
	}

	write := func(name string, stats profile.Stats, xLabel string) {
		p, err := tsplot.MeanProfile(stats, name, xLabel)
		assertNoError(err)
		assertNoError(tsplot.WritePNG(p, filepath.Join(*outDir, name+".png")))
		assertNoError(writeStatsCSV(filepath.Join(*outDir, name+".csv"), stats))
	}
	write("temperature", result.TemperatureStats, "conservative temperature [°C]")
	write("salinity", result.SalinityStats, "absolute salinity [g/kg]")
	if cfg.IncludeDensityContour {
		write("density", result.DensityStats, "sigma0 [kg/m³]")
	}

	if *fillHoles {
		result.Temperature, err = profile.FillSection(result.Temperature)
		assertNoError(err)
		result.Salinity, err = profile.FillSection(result.Salinity)
		assertNoError(err)
	}

	var isopycnals eos.EquationOfState
	if cfg.IncludeDensityContour {
		isopycnals = linear.New()
	}
	ts, err := tsplot.TSDiagram(ctx, result.Salinity, result.Temperature, isopycnals)
	assertNoError(err)
	assertNoError(tsplot.WritePNG(ts, filepath.Join(*outDir, "ts_diagram.png")))

	for i, cast := range result.Casts {
		if cast == nil {
			continue
		}
		logger.Infof(ctx, "cast %d (%s): %.1f km from the first cast", i, cast.Station, result.DistanceKm[i])
	}
	fmt.Printf("wrote figures and tables for %q to %s\n", cfg.Category, *outDir)
}

func writeStatsCSV(path string, stats profile.Stats) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"pressure_dbar", "mean", "stddev", "count"}); err != nil {
		return err
	}
	for i, level := range stats.Grid.Levels {
		record := []string{
			strconv.FormatFloat(level, 'g', -1, 64),
			strconv.FormatFloat(stats.Mean[i], 'g', -1, 64),
			strconv.FormatFloat(stats.StdDev[i], 'g', -1, 64),
			strconv.Itoa(stats.Count[i]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
