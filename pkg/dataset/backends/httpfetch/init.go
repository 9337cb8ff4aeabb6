package httpfetch

import (
	"github.com/jvynn/coessing-2025/pkg/dataset/registry"
	"github.com/jvynn/coessing-2025/pkg/dataset/types"
)

const (
	Priority = 100
)

func init() {
	registry.RegisterFetcherFactory(Priority, FetcherHTTPFactory{})
}

type FetcherHTTPFactory struct{}

func (FetcherHTTPFactory) NewFetcher() (types.Fetcher, error) {
	return NewFetcher()
}
