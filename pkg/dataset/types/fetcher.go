package types

import (
	"context"
	"io"
)

// Fetcher opens a raw byte stream for a file location. Implementations live
// under backends/ and register themselves with the registry package.
type Fetcher interface {
	// CanOpen reports whether this fetcher understands the location
	// (typically by its URL scheme).
	CanOpen(location string) bool

	// Open retrieves the location. The caller owns the returned stream.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
