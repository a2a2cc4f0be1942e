package ttlcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/rueidis"
	"github.com/samber/mo"
)

var _ TTLCache = (*RueidisTTLCache)(nil)

// RueidisTTLCache stores values JSON-encoded under the same contract as the
// in-process backends. Expiry is native to Redis, so a Get never has to purge
// anything itself.
type RueidisTTLCache struct {
	rueidis rueidis.Client
	ttl     time.Duration
}

func NewRueidisTTLCache(client rueidis.Client, ttl time.Duration) *RueidisTTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RueidisTTLCache{
		rueidis: client,
		ttl:     ttl,
	}
}

func (c *RueidisTTLCache) Get(ctx context.Context, key string) (mo.Option[any], error) {
	if key == "" {
		return mo.None[any](), ErrEmptyKey
	}

	getCmd := c.rueidis.B().
		Get().
		Key(key).
		Build()

	raw, err := c.rueidis.Do(ctx, getCmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return mo.None[any](), nil
		}

		return mo.None[any](), err
	}

	var value any

	err = json.Unmarshal(raw, &value)
	if err != nil {
		return mo.None[any](), err
	}

	return mo.Some(value), nil
}

func (c *RueidisTTLCache) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	setCmd := c.rueidis.B().
		Set().
		Key(key).
		Value(string(jsonValue)).
		ExSeconds(int64(c.ttl.Seconds())).
		Build()

	return c.rueidis.Do(ctx, setCmd).Error()
}

// Clear flushes the whole database. The client is assumed to own a dedicated
// one.
func (c *RueidisTTLCache) Clear(ctx context.Context) error {
	flushdbCmd := c.rueidis.B().
		Flushdb().
		Build()

	return c.rueidis.Do(ctx, flushdbCmd).Error()
}

func (c *RueidisTTLCache) Stats(ctx context.Context) (Stats, error) {
	dbsizeCmd := c.rueidis.B().
		Dbsize().
		Build()

	count, err := c.rueidis.Do(ctx, dbsizeCmd).AsInt64()
	if err != nil {
		return Stats{}, err
	}

	var size int64

	cursor := uint64(0)

	for {
		scanCmd := c.rueidis.B().
			Scan().
			Cursor(cursor).
			Count(100).
			Build()

		entry, err := c.rueidis.Do(ctx, scanCmd).AsScanEntry()
		if err != nil {
			return Stats{}, err
		}

		for _, key := range entry.Elements {
			strlenCmd := c.rueidis.B().
				Strlen().
				Key(key).
				Build()

			length, err := c.rueidis.Do(ctx, strlenCmd).AsInt64()
			if err != nil {
				return Stats{}, err
			}

			size += length
		}

		cursor = entry.Cursor
		if cursor == 0 {
			break
		}
	}

	return Stats{
		EntryCount:      int(count),
		ApproxSizeBytes: int(size),
	}, nil
}
