// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about alignment runs and cache
// operations.
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
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAlignHooks(&myAlignHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Align().OnAlignStart(ctx, len(datasets))
//	// ... run alignment ...
//	observability.Align().OnAlignComplete(ctx, groups, relations, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Alignment Hooks
// =============================================================================

// AlignHooks receives events from alignment runs.
type AlignHooks interface {
	// OnAlignStart records the beginning of an alignment over datasetCount inputs.
	OnAlignStart(ctx context.Context, datasetCount int)

	// OnAlignComplete records a finished alignment with its group and
	// relation-row counts.
	OnAlignComplete(ctx context.Context, groups, relations int, duration time.Duration, err error)

	// OnUnclassified records cross-references that matched no policy table.
	OnUnclassified(ctx context.Context, count int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAlignHooks is a no-op implementation of AlignHooks.
type NoopAlignHooks struct{}

func (NoopAlignHooks) OnAlignStart(context.Context, int)                               {}
func (NoopAlignHooks) OnAlignComplete(context.Context, int, int, time.Duration, error) {}
func (NoopAlignHooks) OnUnclassified(context.Context, int)                             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	alignHooks AlignHooks = NoopAlignHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetAlignHooks registers custom alignment hooks.
// This should be called once at application startup before any alignment runs.
func SetAlignHooks(h AlignHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		alignHooks = h
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

// Align returns the registered alignment hooks.
func Align() AlignHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return alignHooks
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
	alignHooks = NoopAlignHooks{}
	cacheHooks = NoopCacheHooks{}
}
