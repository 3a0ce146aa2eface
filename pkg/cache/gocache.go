package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type goCacheWrapper struct {
	cache *gocache.Cache
}

// NewGoCache builds the default local cache backend.
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCacheWrapper{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (gc *goCacheWrapper) Get(ctx context.Context, key string) (interface{}, bool) {
	return gc.cache.Get(key)
}

func (gc *goCacheWrapper) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	gc.cache.Set(key, value, expiration)
	return nil
}

func (gc *goCacheWrapper) Delete(ctx context.Context, key string) error {
	gc.cache.Delete(key)
	return nil
}

func (gc *goCacheWrapper) Exists(ctx context.Context, key string) bool {
	_, found := gc.cache.Get(key)
	return found
}

func (gc *goCacheWrapper) Clear(ctx context.Context) error {
	gc.cache.Flush()
	return nil
}

func (gc *goCacheWrapper) Close() error { return nil }
