package ttlcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/mo"
)

var _ TTLCache = (*GoCacheTTLCache)(nil)

// GoCacheTTLCache backs the cache with patrickmn/go-cache. The janitor is
// disabled so expired rows linger in storage until an access discovers them,
// keeping the same lazy eviction the map-based backend has.
type GoCacheTTLCache struct {
	mutex sync.Mutex

	cache *gocache.Cache
}

func NewGoCacheTTLCache(ttl time.Duration) *GoCacheTTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &GoCacheTTLCache{
		cache: gocache.New(ttl, 0),
	}
}

func (c *GoCacheTTLCache) Get(_ context.Context, key string) (mo.Option[any], error) {
	if key == "" {
		return mo.None[any](), ErrEmptyKey
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, found := c.cache.Get(key)
	if !found {
		// go-cache keeps the expired row around without a janitor
		c.cache.Delete(key)

		return mo.None[any](), nil
	}

	return mo.Some(value), nil
}

func (c *GoCacheTTLCache) Set(_ context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Set(key, value, gocache.DefaultExpiration)

	return nil
}

func (c *GoCacheTTLCache) Clear(_ context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Flush()

	return nil
}

// Stats sums sizes over live rows only, go-cache does not expose expired ones.
// EntryCount still counts them, matching the other backends.
func (c *GoCacheTTLCache) Stats(_ context.Context) (Stats, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	size := 0
	for _, item := range c.cache.Items() {
		size += len(fmt.Sprint(item.Object))
	}

	return Stats{
		EntryCount:      c.cache.ItemCount(),
		ApproxSizeBytes: size,
	}, nil
}
