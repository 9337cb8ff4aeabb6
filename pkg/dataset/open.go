package dataset

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/jvynn/coessing-2025/pkg/dataset/registry"
)

var (
	lastSuccessfulFetcherFactory       registry.FetcherFactory
	lastSuccessfulFetcherFactoryLocker sync.Mutex
)

func getLastSuccessfulFetcherFactory() registry.FetcherFactory {
	lastSuccessfulFetcherFactoryLocker.Lock()
	defer lastSuccessfulFetcherFactoryLocker.Unlock()
	return lastSuccessfulFetcherFactory
}

func setLastSuccessfulFetcherFactory(factory registry.FetcherFactory) {
	lastSuccessfulFetcherFactoryLocker.Lock()
	defer lastSuccessfulFetcherFactoryLocker.Unlock()
	lastSuccessfulFetcherFactory = factory
}

// OpenLocation opens the raw stream behind a location using the first
// registered fetcher backend that accepts it. The backend that served the
// previous location is tried first, since the files of one batch usually
// live next to each other.
func OpenLocation(
	ctx context.Context,
	location string,
) (io.ReadCloser, error) {
	if factory := getLastSuccessfulFetcherFactory(); factory != nil {
		fetcher, err := factory.NewFetcher()
		if err == nil && fetcher.CanOpen(location) {
			stream, err := fetcher.Open(ctx, location)
			if err == nil {
				return stream, nil
			}
			logger.Debugf(ctx, "the cached fetcher backend failed on %q: %v", location, err)
		}
	}

	var mErr *multierror.Error
	for _, factory := range registry.FetcherFactories() {
		fetcher, err := factory.NewFetcher()
		logger.Debugf(ctx, "initializing fetcher %T result is %v", fetcher, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to initialize %T: %w", fetcher, err))
			continue
		}
		if !fetcher.CanOpen(location) {
			continue
		}

		stream, err := fetcher.Open(ctx, location)
		logger.Debugf(ctx, "opening %q with %T result is %v", location, fetcher, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to open %q with %T: %w", location, fetcher, err))
			continue
		}

		setLastSuccessfulFetcherFactory(factory)
		return stream, nil
	}

	if err := mErr.ErrorOrNil(); err != nil {
		return nil, RetrievalError{Location: location, Err: err}
	}
	return nil, RetrievalError{Location: location, Err: fmt.Errorf("no registered fetcher backend accepts this location")}
}

// Load retrieves one location and decodes it into a Cast.
func Load(
	ctx context.Context,
	location string,
) (*Cast, error) {
	stream, err := OpenLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logger.Warnf(ctx, "unable to close the stream of %q: %v", location, err)
		}
	}()

	cast, err := DecodeCast(ctx, stream)
	if err != nil {
		return nil, RetrievalError{Location: location, Err: err}
	}
	if cast.Station == "" {
		cast.Station = location
	}
	return cast, nil
}
