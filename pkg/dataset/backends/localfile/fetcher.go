// Package localfile serves cast files from the local filesystem, so a
// workshop can run from a pre-downloaded directory without any network.
package localfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jvynn/coessing-2025/pkg/dataset/types"
)

type Fetcher struct{}

var _ types.Fetcher = (*Fetcher)(nil)

func NewFetcher() (*Fetcher, error) {
	return &Fetcher{}, nil
}

func (f *Fetcher) CanOpen(location string) bool {
	if strings.HasPrefix(location, "file://") {
		return true
	}
	// Anything without a scheme is treated as a plain path.
	return !strings.Contains(location, "://")
}

func (f *Fetcher) Open(
	ctx context.Context,
	location string,
) (io.ReadCloser, error) {
	path := strings.TrimPrefix(location, "file://")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	return file, nil
}
