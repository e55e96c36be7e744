// Package cache provides a small key/value cache used for computed group
// balances. Entries carry a TTL so stale data ages out even if an
// invalidation is missed.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// Get retrieves the raw value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any held connections.
	Close() error
}
