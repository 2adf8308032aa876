// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events from tree-data parsing, pathfinding,
// and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine packages free of logging dependencies
//   - Keeps trace output out of the algorithm hot paths unless requested
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPathHooks(&myPathHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Path().OnSearchStart("dijkstra", len(seeds))
//	// ... run search ...
//	observability.Path().OnSearchComplete("dijkstra", visited, duration)
package observability

import (
	"sync"
	"time"
)

// ParseHooks receives events from the tree-data parser.
type ParseHooks interface {
	// OnNodeSkipped records a malformed node body that was skipped.
	OnNodeSkipped(id int, err error)

	// OnParsed records a completed parse.
	OnParsed(version string, nodeCount, skipped int)
}

// PathHooks receives events from pathfinding searches. Implementations must
// be cheap: OnVisit fires once per expanded node.
type PathHooks interface {
	// OnSearchStart records the beginning of a search.
	// algorithm is "bfs" or "dijkstra"; seeds is the number of start nodes.
	OnSearchStart(algorithm string, seeds int)

	// OnVisit records a node expansion at the given distance.
	OnVisit(algorithm string, id int, distance int)

	// OnSearchComplete records a finished search.
	OnSearchComplete(algorithm string, visited int, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// NoopParseHooks is a no-op implementation of ParseHooks.
type NoopParseHooks struct{}

func (NoopParseHooks) OnNodeSkipped(int, error)  {}
func (NoopParseHooks) OnParsed(string, int, int) {}

// NoopPathHooks is a no-op implementation of PathHooks.
type NoopPathHooks struct{}

func (NoopPathHooks) OnSearchStart(string, int)                   {}
func (NoopPathHooks) OnVisit(string, int, int)                    {}
func (NoopPathHooks) OnSearchComplete(string, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

var (
	parseHooks ParseHooks = NoopParseHooks{}
	pathHooks  PathHooks  = NoopPathHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetParseHooks registers custom parse hooks.
// This should be called once at application startup before any parsing.
func SetParseHooks(h ParseHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		parseHooks = h
	}
}

// SetPathHooks registers custom pathfinding hooks.
// This should be called once at application startup before any searches.
func SetPathHooks(h PathHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pathHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Parse returns the registered parse hooks.
func Parse() ParseHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return parseHooks
}

// Path returns the registered pathfinding hooks.
func Path() PathHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pathHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	parseHooks = NoopParseHooks{}
	pathHooks = NoopPathHooks{}
	cacheHooks = NoopCacheHooks{}
}
