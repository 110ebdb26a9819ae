// Package cache provides a content-addressed local cache.
//
// The CLI uses it to memoize skeleton bitmaps: thinning is by far the
// slowest pipeline stage and is a pure function of the source image, so
// repeated traces over the same drawing can skip it entirely. Entries are
// keyed by the SHA-256 of the image bytes.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
