package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// Variable names differ between CTD archives; the decoder accepts the
// common spellings for each of the three series we need.
var (
	pressureNames    = []string{"pressure", "PRES", "pres", "sea_water_pressure", "p"}
	temperatureNames = []string{"CT", "conservative_temperature", "temperature", "TEMP", "temp"}
	salinityNames    = []string{"SA", "absolute_salinity", "salinity", "PSAL", "psal"}
	latNames         = []string{"lat", "latitude", "LATITUDE"}
	lonNames         = []string{"lon", "longitude", "LONGITUDE"}
)

// DecodeCast reads a NetCDF cast file from the stream. The NetCDF reader
// needs random access, so the stream is spooled to a temporary file first
// (cast files are single stations, a few hundred KB at most).
func DecodeCast(
	ctx context.Context,
	stream io.Reader,
) (*Cast, error) {
	tmp, err := os.CreateTemp("", "cast-*.nc")
	if err != nil {
		return nil, fmt.Errorf("unable to create a spool file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			logger.Warnf(ctx, "unable to remove the spool file %q: %v", tmp.Name(), err)
		}
	}()

	n, err := io.Copy(tmp, stream)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("unable to spool the stream (%d bytes written): %w", n, err)
	}

	group, err := netcdf.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("unable to open the NetCDF payload: %w", err)
	}
	defer group.Close()

	return decodeGroup(ctx, group)
}

// castSource is the slice of the NetCDF group API the decoder reads.
type castSource interface {
	GetVariable(name string) (*api.Variable, error)
	ListVariables() []string
	Attributes() api.AttributeMap
}

func decodeGroup(ctx context.Context, group castSource) (*Cast, error) {
	cast := &Cast{
		Lat: math.NaN(),
		Lon: math.NaN(),
	}

	pressure, err := readSeries(group, pressureNames)
	if err != nil {
		return nil, fmt.Errorf("the cast has no usable pressure variable: %w", err)
	}
	cast.Pressure = pressure

	cast.Temperature, err = readSeries(group, temperatureNames)
	if err != nil {
		return nil, fmt.Errorf("the cast has no usable temperature variable: %w", err)
	}
	cast.Salinity, err = readSeries(group, salinityNames)
	if err != nil {
		return nil, fmt.Errorf("the cast has no usable salinity variable: %w", err)
	}

	if lat, err := readScalar(group, latNames); err == nil {
		cast.Lat = lat
	} else {
		logger.Debugf(ctx, "no latitude in the cast file: %v", err)
	}
	if lon, err := readScalar(group, lonNames); err == nil {
		cast.Lon = lon
	} else {
		logger.Debugf(ctx, "no longitude in the cast file: %v", err)
	}

	if station, ok := group.Attributes().Get("station"); ok {
		if s, ok := station.(string); ok {
			cast.Station = s
		}
	}

	if err := cast.validate(); err != nil {
		return nil, err
	}
	return cast, nil
}

func readSeries(group castSource, names []string) ([]float64, error) {
	variable, name, err := findVariable(group, names)
	if err != nil {
		return nil, err
	}

	values, err := toFloat64s(variable.Values)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}

	if variable.Attributes == nil {
		return values, nil
	}
	// NetCDF encodes missing samples as the variable's fill value; our
	// missing sentinel is NaN.
	if fill, ok := variable.Attributes.Get("_FillValue"); ok {
		if fillValues, err := toFloat64s(fill); err == nil && len(fillValues) == 1 {
			for i, v := range values {
				if v == fillValues[0] {
					values[i] = math.NaN()
				}
			}
		}
	}
	return values, nil
}

func readScalar(group castSource, names []string) (float64, error) {
	variable, name, err := findVariable(group, names)
	if err != nil {
		return 0, err
	}
	values, err := toFloat64s(variable.Values)
	if err != nil {
		return 0, fmt.Errorf("variable %q: %w", name, err)
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("variable %q holds %d values, expected a scalar", name, len(values))
	}
	return values[0], nil
}

func findVariable(group castSource, names []string) (*api.Variable, string, error) {
	for _, name := range names {
		variable, err := group.GetVariable(name)
		if err != nil {
			continue
		}
		return variable, name, nil
	}
	return nil, "", fmt.Errorf("none of the variables %v is present (the file defines %v)", names, group.ListVariables())
}

func toFloat64s(values any) ([]float64, error) {
	switch v := values.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int32:
		return []float64{float64(v)}, nil
	case int64:
		return []float64{float64(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", values)
	}
}
