// Package cache stores derived artifacts: chain diagram descriptions,
// rendered SVGs and HTTP responses for CSV-over-HTTP narrator sources.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// servers sharing a cache, and [NullCache] when caching is disabled. Keys
// come from a [Keyer] so that every caller builds them the same way.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key of a cached HTTP response body.
	HTTPKey(namespace, key string) string

	// DiagramKey is the key of a chain diagram description.
	DiagramKey(hadithID string, opts DiagramKeyOpts) string

	// ArtifactKey is the key of a rendered diagram (SVG, DOT, Mermaid).
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the inputs that change a diagram description.
type DiagramKeyOpts struct {
	Locale      string `json:"locale"`
	PivotMarker string `json:"pivot_marker,omitempty"`
	Store       string `json:"store,omitempty"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the Keyer used unless a caller scopes keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// DiagramKey hashes the hadith id with opts.
func (DefaultKeyer) DiagramKey(hadithID string, opts DiagramKeyOpts) string {
	return hashKey("diagram", hadithID, opts)
}

// ArtifactKey hashes the diagram hash with opts.
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
