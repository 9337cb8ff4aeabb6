package localfile

import (
	"github.com/jvynn/coessing-2025/pkg/dataset/registry"
	"github.com/jvynn/coessing-2025/pkg/dataset/types"
)

const (
	Priority = 50
)

func init() {
	registry.RegisterFetcherFactory(Priority, FetcherFileFactory{})
}

type FetcherFileFactory struct{}

func (FetcherFileFactory) NewFetcher() (types.Fetcher, error) {
	return NewFetcher()
}
