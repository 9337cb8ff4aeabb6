package profile

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a transform is asked to interpolate a
// profile that has no valid (non-NaN) samples at all.
var ErrInsufficientData = errors.New("profile has no valid samples")

// OrderingError reports source positions that are not monotonically
// non-decreasing. Resampling rejects such input instead of sorting it, so a
// scrambled cast can never silently produce plausible-looking values.
type OrderingError struct {
	Index      int
	Prev, Curr float64
}

func (e OrderingError) Error() string {
	return fmt.Sprintf("source positions are not monotonic: position[%d] == %v is below position[%d] == %v", e.Index, e.Curr, e.Index-1, e.Prev)
}
