// Package cache provides a pluggable byte cache for fetched catalog data.
//
// Backends:
//   - file: JSON files under the user cache directory (CLI default)
//   - redis: shared cache for the HTTP facade (go-redis)
//   - null: disables caching (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTLs.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
