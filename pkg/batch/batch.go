// Package batch drives a whole category of casts through the profile
// transforms: fetch, fill, resample onto a shared depth grid, aggregate, and
// compute density through the equation-of-state collaborator.
package batch

import (
	"context"
	"fmt"
	"math"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/jvynn/coessing-2025/pkg/dataset"
	"github.com/jvynn/coessing-2025/pkg/eos"
	"github.com/jvynn/coessing-2025/pkg/geo"
	"github.com/jvynn/coessing-2025/pkg/profile"
)

// Config is the explicit configuration of one batch run. The zero value is
// not usable; start from DefaultConfig or FromEnv.
type Config struct {
	// Category selects which manifest group of casts to process.
	Category string `envconfig:"CATEGORY" default:"ctd_gulf_of_guinea"`

	// DepthMin/DepthMax/DepthCount define the shared depth grid (dbar).
	DepthMin   float64 `envconfig:"DEPTH_MIN" default:"0"`
	DepthMax   float64 `envconfig:"DEPTH_MAX" default:"200"`
	DepthCount int     `envconfig:"DEPTH_COUNT" default:"101"`

	// IncludeDensityContour additionally computes the density matrix and
	// statistics through the equation of state.
	IncludeDensityContour bool `envconfig:"INCLUDE_DENSITY_CONTOUR" default:"true"`

	// Parallelism bounds how many casts are in flight at once. Casts share
	// no mutable state, so this is purely a throughput knob.
	Parallelism int `envconfig:"PARALLELISM" default:"4"`
}

// DefaultConfig returns the same defaults the struct tags declare.
func DefaultConfig() Config {
	return Config{
		Category:              "ctd_gulf_of_guinea",
		DepthMin:              0,
		DepthMax:              200,
		DepthCount:            101,
		IncludeDensityContour: true,
		Parallelism:           4,
	}
}

// FromEnv builds a Config from `<prefix>_*` environment variables, falling
// back to the struct-tag defaults.
func FromEnv(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to process the environment configuration: %w", err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Category == "" {
		return fmt.Errorf("a category is required")
	}
	if cfg.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", cfg.Parallelism)
	}
	return nil
}

// Loader retrieves one cast by location. dataset.Load is the production
// implementation.
type Loader func(ctx context.Context, location string) (*dataset.Cast, error)

// Result of a batch run. Matrix rows follow the manifest's location order;
// a cast that failed to load leaves its row all-NaN and its entry in Casts
// nil, and the failure is recorded in Skipped.
type Result struct {
	Grid  profile.DepthGrid
	Casts []*dataset.Cast

	Temperature profile.Matrix
	Salinity    profile.Matrix
	Density     profile.Matrix

	TemperatureStats profile.Stats
	SalinityStats    profile.Stats
	DensityStats     profile.Stats

	// DistanceKm is the great-circle distance of each cast from the first
	// successfully loaded one; NaN where unknown.
	DistanceKm []float64

	// Skipped collects the per-cast failures of a partially successful
	// run. A single malformed cast must not block the aggregate.
	Skipped error
}

// Run processes every location of cfg.Category through load, fill, resample
// and aggregate. Per-cast failures are skipped (logged and collected);
// Run only fails as a whole when the configuration or manifest is unusable,
// when the context is canceled, or when not a single cast survived.
func Run(
	ctx context.Context,
	cfg Config,
	manifest *dataset.Manifest,
	load Loader,
	equationOfState eos.EquationOfState,
) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.IncludeDensityContour && equationOfState == nil {
		return nil, fmt.Errorf("density output is requested but no equation of state is provided")
	}

	locations, err := manifest.Locations(cfg.Category)
	if err != nil {
		return nil, err
	}
	grid, err := profile.NewDepthGrid(cfg.DepthMin, cfg.DepthMax, cfg.DepthCount)
	if err != nil {
		return nil, fmt.Errorf("unable to build the depth grid: %w", err)
	}

	result := &Result{
		Grid:        grid,
		Casts:       make([]*dataset.Cast, len(locations)),
		Temperature: profile.NewMatrix(grid, len(locations)),
		Salinity:    profile.NewMatrix(grid, len(locations)),
		Density:     profile.NewMatrix(grid, len(locations)),
		DistanceKm:  make([]float64, len(locations)),
	}
	castErrs := make([]error, len(locations))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i, location := range locations {
		i, location := i, location
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			err := processCast(gCtx, cfg, result, i, location, load, equationOfState)
			if err != nil {
				logger.Warnf(gCtx, "skipping cast %d (%q): %v", i, location, err)
				castErrs[i] = fmt.Errorf("cast %d (%q): %w", i, location, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var mErr *multierror.Error
	loaded := 0
	for i := range result.Casts {
		if castErrs[i] != nil {
			mErr = multierror.Append(mErr, castErrs[i])
			continue
		}
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("every cast of category %q failed: %w", cfg.Category, mErr)
	}
	result.Skipped = mErr.ErrorOrNil()

	fillDistances(result)

	if result.TemperatureStats, err = profile.Aggregate(result.Temperature); err != nil {
		return nil, fmt.Errorf("unable to aggregate temperature: %w", err)
	}
	if result.SalinityStats, err = profile.Aggregate(result.Salinity); err != nil {
		return nil, fmt.Errorf("unable to aggregate salinity: %w", err)
	}
	if cfg.IncludeDensityContour {
		if result.DensityStats, err = profile.Aggregate(result.Density); err != nil {
			return nil, fmt.Errorf("unable to aggregate density: %w", err)
		}
	}

	logger.Infof(ctx, "processed category %q: %d of %d casts on a %d-level grid", cfg.Category, loaded, len(locations), grid.Len())
	return result, nil
}

// processCast loads one cast and fills its rows of the result matrices. Each
// cast owns exactly its own row index, so no synchronization is needed.
func processCast(
	ctx context.Context,
	cfg Config,
	result *Result,
	i int,
	location string,
	load Loader,
	equationOfState eos.EquationOfState,
) error {
	cast, err := load(ctx, location)
	if err != nil {
		return err
	}

	temperature, err := resampleVariable(cast.TemperatureProfile(), result.Grid)
	if err != nil {
		return fmt.Errorf("temperature: %w", err)
	}
	salinity, err := resampleVariable(cast.SalinityProfile(), result.Grid)
	if err != nil {
		return fmt.Errorf("salinity: %w", err)
	}

	if err := result.Temperature.SetRow(i, temperature); err != nil {
		return err
	}
	if err := result.Salinity.SetRow(i, salinity); err != nil {
		return err
	}

	if cfg.IncludeDensityContour {
		density, err := equationOfState.PotentialDensityAnomaly(ctx, salinity, temperature)
		if err != nil {
			return fmt.Errorf("density: %w", err)
		}
		if err := result.Density.SetRow(i, density); err != nil {
			return err
		}
	}

	result.Casts[i] = cast
	return nil
}

// resampleVariable is the per-variable pipeline: complete the profile, then
// put it on the shared grid.
func resampleVariable(p profile.Profile, grid profile.DepthGrid) ([]float64, error) {
	filled, err := profile.FillMissing(p)
	if err != nil {
		return nil, err
	}
	return profile.Resample(filled, grid)
}

// fillDistances computes each cast's distance from the first loaded cast,
// for along-transect plots.
func fillDistances(result *Result) {
	var origin *dataset.Cast
	for _, cast := range result.Casts {
		if cast != nil {
			origin = cast
			break
		}
	}
	for i, cast := range result.Casts {
		if origin == nil || cast == nil || math.IsNaN(cast.Lat) || math.IsNaN(origin.Lat) {
			result.DistanceKm[i] = math.NaN()
			continue
		}
		result.DistanceKm[i] = geo.HaversineKm(origin.Location(), cast.Location())
	}
}
