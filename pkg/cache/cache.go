// Package cache provides caching for computed layouts and rendered artifacts.
//
// Layouts and rendered outputs are deterministic functions of a trace plus
// options, so both are cached content-addressed: the cache key embeds a hash
// of the trace data and the relevant option set. Two backends are provided:
//
//   - FileCache: file-backed cache for CLI usage (XDG cache directory)
//   - NullCache: no-op cache for tests or when caching is disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Default TTLs per cached content type.
const (
	// TTLLayout is the lifetime of cached layout computations.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Stage names embedded in cache keys. The FileCache also groups entries
// on disk by these.
const (
	StageLayout   = "layout"
	StageArtifact = "artifact"
)

// LayoutKeyOpts are the option fields that affect layout computation.
type LayoutKeyOpts struct {
	Kind   string  `json:"kind"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ArtifactKeyOpts are the option fields that affect rendered output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style"`
}

// Keyer generates cache keys for the different cached content types.
type Keyer interface {
	// LayoutKey generates a key for layout caching.
	LayoutKey(traceHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching. Two traces with the same
// content and layout options share a key; any difference in kind or frame
// size produces a distinct one.
func (k *DefaultKeyer) LayoutKey(traceHash string, opts LayoutKeyOpts) string {
	return stageKey(StageLayout, traceHash, opts)
}

// ArtifactKey generates a key for artifact caching, scoped to the layout
// content plus the format and style that shaped the output.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey(StageArtifact, layoutHash, opts)
}

// stageKey builds "<stage>:<digest>" where the digest covers the content
// hash and the option set. The full SHA-256 digest is kept so distinct
// inputs cannot collide.
func stageKey(stage, contentHash string, opts any) string {
	optsJSON, _ := json.Marshal(opts)
	digest := sha256.Sum256(append([]byte(contentHash+"|"), optsJSON...))
	return stage + ":" + hex.EncodeToString(digest[:])
}

// Hash computes the SHA-256 hex digest of data. It is the content hash
// fed into the keyers: the pipeline hashes the serialized trace for
// layout keys and the serialized layout for artifact keys.
func Hash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
