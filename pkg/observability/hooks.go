// Package observability provides hooks for instrumenting solver and
// cache operations.
//
// The package uses a simple hooks pattern: hook interfaces per event
// category, no-op default implementations, and a registry populated by
// main at startup. Libraries stay free of any logging or metrics
// framework; the CLI registers an implementation that forwards events to
// its logger when verbose output is requested.
//
// # Usage
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnResolveStart(ctx, len(requested))
//	// ... resolve ...
//	observability.Solver().OnResolveComplete(ctx, len(txn), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SolverHooks receives events from resolver-engine operations.
type SolverHooks interface {
	// Metadata load events
	OnMetadataLoadStart(ctx context.Context, repoCount int)
	OnMetadataLoadComplete(ctx context.Context, repoCount int, duration time.Duration, err error)

	// Resolve events
	OnResolveStart(ctx context.Context, requestedCount int)
	OnResolveComplete(ctx context.Context, installedCount int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnMetadataLoadStart(context.Context, int)                          {}
func (NoopSolverHooks) OnMetadataLoadComplete(context.Context, int, time.Duration, error) {}
func (NoopSolverHooks) OnResolveStart(context.Context, int)                               {}
func (NoopSolverHooks) OnResolveComplete(context.Context, int, time.Duration, error)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any engine work.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
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

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
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
	solverHooks = NoopSolverHooks{}
	cacheHooks = NoopCacheHooks{}
}
