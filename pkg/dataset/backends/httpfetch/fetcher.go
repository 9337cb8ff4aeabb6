// Package httpfetch retrieves cast files over HTTP(S).
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/jvynn/coessing-2025/pkg/dataset/types"
	"github.com/xaionaro-go/datacounter"
)

const defaultTimeout = 5 * time.Minute

type Fetcher struct {
	Client *http.Client
}

var _ types.Fetcher = (*Fetcher)(nil)

func NewFetcher() (*Fetcher, error) {
	return &Fetcher{
		Client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (f *Fetcher) CanOpen(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (f *Fetcher) Open(
	ctx context.Context,
	location string,
) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build a request for %q: %w", location, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to GET %q: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %q returned status %d", location, resp.StatusCode)
	}

	counter := datacounter.NewReaderCounter(resp.Body)
	return &countingStream{
		ReaderCounter: counter,
		close: func() error {
			logger.Debugf(ctx, "downloaded %d bytes from %q", counter.Count(), location)
			return resp.Body.Close()
		},
	}, nil
}

type countingStream struct {
	*datacounter.ReaderCounter
	close func() error
}

func (s *countingStream) Close() error {
	return s.close()
}
