package cache

// ScopedKeyer wraps a Keyer with a prefix so that several datasets can
// share one cache without colliding.
//
// Example usage:
//
//	// keys for the sqlite store
//	k := NewScopedKeyer(NewDefaultKeyer(), "sqlite:")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// DiagramKey generates a prefixed key for diagram caching.
func (k *ScopedKeyer) DiagramKey(hadithID string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(hadithID, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
