package cache

import (
	"context"
	"time"
)

// NoopCache is used when no redis address is configured. Every Get is a miss.
type NoopCache struct{}

// NewNoopCache returns a cache that stores nothing.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// Ensure NoopCache implements Cache
var _ Cache = (*NoopCache)(nil)

func (n *NoopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (n *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (n *NoopCache) Close() error {
	return nil
}
