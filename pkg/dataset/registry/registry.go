// Package registry keeps the global list of fetcher backends. Backends
// register themselves from their init(), so importing a backend package is
// all it takes to make it available for probing.
package registry

import (
	"fmt"
	"sync"

	"github.com/jvynn/coessing-2025/pkg/dataset/types"
)

type FetcherFactory interface {
	NewFetcher() (types.Fetcher, error)
}

type entry struct {
	name     string
	priority int
	factory  FetcherFactory
}

var (
	mu      sync.Mutex
	entries []entry
)

// RegisterFetcherFactory adds a backend to the probe list. Higher priority
// backends are probed first; among equal priorities registration order is
// kept. Registering the same factory type twice panics, since it means two
// packages fight over one backend.
func RegisterFetcherFactory(
	priority int,
	fetcherFactory FetcherFactory,
) {
	name := fmt.Sprintf("%T", fetcherFactory)

	mu.Lock()
	defer mu.Unlock()
	at := len(entries)
	for i, e := range entries {
		if e.name == name {
			panic(fmt.Errorf("fetcher factory %s is already registered", name))
		}
		if at == len(entries) && e.priority < priority {
			at = i
		}
	}
	entries = append(entries, entry{})
	copy(entries[at+1:], entries[at:])
	entries[at] = entry{name: name, priority: priority, factory: fetcherFactory}
}

// FetcherFactories returns the registered backends in probe order.
func FetcherFactories() []FetcherFactory {
	mu.Lock()
	defer mu.Unlock()
	factories := make([]FetcherFactory, len(entries))
	for i, e := range entries {
		factories[i] = e.factory
	}
	return factories
}
