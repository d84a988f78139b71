// Package cache stores conversion artifacts so repeated conversions of the
// same graph skip the external transform tools.
//
// Entries are keyed by the graph's wire-form hash plus the target format,
// so a cached artifact is valid for exactly one (graph, representation)
// pair. Three backends are provided: [FileCache] for local CLI use,
// [RedisCache] for shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLArtifact is the default lifetime of cached conversion artifacts.
// Conversions are deterministic for a given tool version, so the TTL mainly
// bounds disk usage rather than staleness.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores the entry without
	// expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a conversion artifact: the hash of
// the graph's wire form plus the target format name.
func ArtifactKey(graphHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, graphHash)
}
