// Package cache provides artifact caching for compiled decision graphs.
//
// The compile pipeline itself is a pure in-memory transformation, but the
// Graphviz rendering stage is comparatively expensive, so rendered artifacts
// are cached keyed by a hash of the input deck plus the compile options.
//
// Three backends are provided:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for multi-instance serve deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
