// Package dataset retrieves and decodes CTD cast files. A manifest groups
// remote file locations by category; fetcher backends (see backends/) know
// how to open a location, and the decoder turns the NetCDF payload into a
// Cast ready for the profile transforms.
package dataset

import (
	"fmt"
	"math"

	"github.com/jvynn/coessing-2025/pkg/geo"
	"github.com/jvynn/coessing-2025/pkg/profile"
)

// Cast is one decoded CTD station: the vertical pressure series plus the
// measured variables aligned with it. Missing samples are NaN.
type Cast struct {
	Station string
	Lat     float64
	Lon     float64

	Pressure    []float64 // dbar
	Temperature []float64 // conservative temperature, degC
	Salinity    []float64 // absolute salinity, g/kg
}

// Location returns the cast coordinate as a geo.Point.
func (c *Cast) Location() geo.Point {
	return geo.Point{Lat: c.Lat, Lon: c.Lon}
}

// TemperatureProfile pairs the temperature series with the pressure axis.
func (c *Cast) TemperatureProfile() profile.Profile {
	return profile.Profile{Positions: c.Pressure, Values: c.Temperature}
}

// SalinityProfile pairs the salinity series with the pressure axis.
func (c *Cast) SalinityProfile() profile.Profile {
	return profile.Profile{Positions: c.Pressure, Values: c.Salinity}
}

func (c *Cast) validate() error {
	if len(c.Pressure) == 0 {
		return fmt.Errorf("cast %q has no pressure samples", c.Station)
	}
	if len(c.Temperature) != len(c.Pressure) {
		return fmt.Errorf("cast %q: temperature length %d does not match pressure length %d", c.Station, len(c.Temperature), len(c.Pressure))
	}
	if len(c.Salinity) != len(c.Pressure) {
		return fmt.Errorf("cast %q: salinity length %d does not match pressure length %d", c.Station, len(c.Salinity), len(c.Pressure))
	}
	allNaN := true
	for _, p := range c.Pressure {
		if !math.IsNaN(p) {
			allNaN = false
			break
		}
	}
	if allNaN {
		return fmt.Errorf("cast %q has no valid pressure samples", c.Station)
	}
	return nil
}

// RetrievalError wraps any failure of the data-source collaborators (fetch,
// decode) with the location that triggered it. It is propagated unchanged:
// this package performs no retries.
type RetrievalError struct {
	Location string
	Err      error
}

func (e RetrievalError) Error() string {
	return fmt.Sprintf("unable to retrieve %q: %v", e.Location, e.Err)
}

func (e RetrievalError) Unwrap() error {
	return e.Err
}
