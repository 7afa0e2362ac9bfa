package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by helpers that treat a miss as an error.
	ErrCacheMiss = errors.New("cache miss")

	// ErrBackendUnavailable is returned when the cache backend cannot be
	// reached. Callers typically degrade to uncached operation.
	ErrBackendUnavailable = errors.New("cache backend unavailable")
)
