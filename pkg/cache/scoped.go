package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when several projects share one Redis instance and need separate
// cache namespaces.
//
// Example usage:
//
//	// Project-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "proj:ecoli:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for a serialized alignment result.
func (k *ScopedKeyer) ResultKey(digest string) string {
	return k.prefix + k.inner.ResultKey(digest)
}
