package rescache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/nekomeowww/rescache/pkg/storage/ttlcache"
	"github.com/nekomeowww/xo/logger"
)

func newTestClient(t *testing.T, callOpts ...CallOption) *Client {
	t.Helper()

	l, err := logger.NewLogger(logger.WithLevel(zapcore.DebugLevel), logger.WithAppName("rescache"), logger.WithNamespace("nekomeowww"))
	require.NoError(t, err)

	client, err := New(append([]CallOption{WithLogger(l)}, callOpts...)...)
	require.NoError(t, err)

	return client
}

var errBackendBroken = errors.New("backend broken")

type brokenTTLCache struct{}

func (c *brokenTTLCache) Get(_ context.Context, _ string) (mo.Option[any], error) {
	return mo.None[any](), errBackendBroken
}

func (c *brokenTTLCache) Set(_ context.Context, _ string, _ any) error {
	return errBackendBroken
}

func (c *brokenTTLCache) Clear(_ context.Context) error {
	return errBackendBroken
}

func (c *brokenTTLCache) Stats(_ context.Context) (ttlcache.Stats, error) {
	return ttlcache.Stats{}, errBackendBroken
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		client, err := New()
		require.NoError(t, err)
		require.NotNil(t, client)

		stats, err := client.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.EntryCount)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		client := newTestClient(t)

		resources := []any{map[string]any{"id": "g1"}}
		require.NoError(t, client.Set(ctx, "a", resources))

		value, err := client.Get(ctx, "a")
		require.NoError(t, err)
		require.True(t, value.IsPresent())
		assert.Equal(t, resources, value.MustGet())
	})

	t.Run("GetBeforeSet", func(t *testing.T) {
		client := newTestClient(t)

		value, err := client.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, value.IsPresent())
	})

	t.Run("EmptyKey", func(t *testing.T) {
		client := newTestClient(t)

		_, err := client.Get(ctx, "")
		require.ErrorIs(t, err, ttlcache.ErrEmptyKey)

		err = client.Set(ctx, "", "value")
		require.ErrorIs(t, err, ttlcache.ErrEmptyKey)
	})

	t.Run("Clear", func(t *testing.T) {
		client := newTestClient(t)

		require.NoError(t, client.Set(ctx, "a", "v1"))
		require.NoError(t, client.Set(ctx, "b", "v2"))
		require.NoError(t, client.Clear(ctx))

		for _, key := range []string{"a", "b"} {
			value, err := client.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, value.IsPresent())
		}
	})

	t.Run("WithTTL", func(t *testing.T) {
		client := newTestClient(t, WithTTL(50*time.Millisecond))

		require.NoError(t, client.Set(ctx, "a", "soon gone"))

		time.Sleep(80 * time.Millisecond)

		value, err := client.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, value.IsPresent())
	})

	t.Run("WithTTLCache", func(t *testing.T) {
		cache := ttlcache.NewGoCacheTTLCache(300 * time.Second)
		client := newTestClient(t, WithTTLCache(cache))

		require.NoError(t, client.Set(ctx, "a", "v1"))

		value, err := cache.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "v1", value.MustGet())
	})

	t.Run("MayGet", func(t *testing.T) {
		client := newTestClient(t)

		require.NoError(t, client.Set(ctx, "a", "v1"))
		assert.Equal(t, "v1", client.MayGet(ctx, "a").MustGet())

		broken := newTestClient(t, WithTTLCache(&brokenTTLCache{}))
		assert.False(t, broken.MayGet(ctx, "a").IsPresent())
	})
}
