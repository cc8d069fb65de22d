package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several projects or sessions share one cache
// directory and need separate namespaces.
//
// Example usage:
//
//	// Session-specific keys
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(traceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(traceHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
