// Package cache stores computed chart geometry.
//
// # Overview
//
// Computing geometry is cheap compared to re-reading and re-validating
// large definition files over and over, and the preview server answers the
// same definition many times while a chart is being edited. Geometry is
// therefore cached under a key derived from the definition bytes and the
// settings that influence layout (text measurer, engine version).
//
// # Backends
//
//   - [NullCache]: stores nothing; used with --no-cache
//   - [FileCache]: one JSON file per entry under the user cache directory;
//     the CLI default
//   - [RedisCache]: a shared Redis instance; used by the preview server
//
// # Keys
//
// [Keyer] derives keys. [DefaultKeyer] hashes its inputs with SHA-256;
// [ScopedKeyer] prefixes another keyer so several deployments can share
// one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long geometry stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
