// Package cache stores rendered artifacts keyed by content hash.
//
// The preview renderer is the main consumer: Graphviz output for a given
// DOT document never changes, so the SVG is cached under [Hash] of the DOT
// text and reused across CLI runs and server requests.
//
// Implementations:
//   - [FileCache]: one file per entry under a directory, with expiry
//   - [MemoryCache]: in-process map, used by the server when no cache
//     directory is configured
//   - [NullCache]: stores nothing
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// PreviewTTL is how long rendered previews are kept.
const PreviewTTL = 7 * 24 * time.Hour
