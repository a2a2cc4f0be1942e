package ttlcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

var _ TTLCache = (*InMemoryTTLCache)(nil)

type InMemoryTTLCache struct {
	mutex sync.Mutex

	ttl     time.Duration
	nowFunc func() time.Time

	mValues    map[string]any
	mCreatedAt map[string]time.Time
}

func NewInMemoryTTLCache(ttl time.Duration) *InMemoryTTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &InMemoryTTLCache{
		ttl:        ttl,
		nowFunc:    time.Now,
		mValues:    make(map[string]any),
		mCreatedAt: make(map[string]time.Time),
	}
}

// Get returns the stored value when the row is younger than the TTL. A row
// past its TTL is deleted on the access that discovers it and reported as
// absent.
func (c *InMemoryTTLCache) Get(_ context.Context, key string) (mo.Option[any], error) {
	if key == "" {
		return mo.None[any](), ErrEmptyKey
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.mValues[key]
	if !ok {
		return mo.None[any](), nil
	}
	if c.nowFunc().Sub(c.mCreatedAt[key]) > c.ttl {
		delete(c.mValues, key)
		delete(c.mCreatedAt, key)

		return mo.None[any](), nil
	}

	return mo.Some(value), nil
}

func (c *InMemoryTTLCache) Set(_ context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.mValues[key] = value
	c.mCreatedAt[key] = c.nowFunc()

	return nil
}

func (c *InMemoryTTLCache) Clear(_ context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.mValues = make(map[string]any)
	c.mCreatedAt = make(map[string]time.Time)

	return nil
}

func (c *InMemoryTTLCache) Stats(_ context.Context) (Stats, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return Stats{
		EntryCount: len(c.mValues),
		ApproxSizeBytes: lo.SumBy(lo.Values(c.mValues), func(value any) int {
			return len(fmt.Sprint(value))
		}),
	}, nil
}
