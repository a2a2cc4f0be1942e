package rescache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nekomeowww/fo"
	"github.com/nekomeowww/rescache/pkg/storage/ttlcache"
	"github.com/nekomeowww/xo/logger"
)

type clientOptions struct {
	ttl      time.Duration
	ttlcache ttlcache.TTLCache
	rueidis  rueidis.Client
	logger   *logger.Logger
}

type CallOption func(*clientOptions)

func WithTTL(ttl time.Duration) CallOption {
	return func(o *clientOptions) {
		o.ttl = ttl
	}
}

func WithLogger(logger *logger.Logger) CallOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func WithTTLCache(ttlcache ttlcache.TTLCache) CallOption {
	return func(o *clientOptions) {
		o.ttlcache = ttlcache
	}
}

func WithRueidis(rueidis rueidis.Client) CallOption {
	return func(o *clientOptions) {
		o.rueidis = rueidis
	}
}

// Client fronts one shared TTLCache. Construct one per process and hand it to
// whatever needs it instead of reaching for a package-level singleton.
type Client struct {
	logger   *logger.Logger
	ttl      time.Duration
	ttlcache ttlcache.TTLCache
}

func New(callOpts ...CallOption) (*Client, error) {
	opts := &clientOptions{
		ttl: ttlcache.DefaultTTL,
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	if opts.logger == nil {
		l, err := logger.NewLogger(logger.WithLevel(zapcore.InfoLevel), logger.WithAppName("rescache"), logger.WithNamespace("nekomeowww"))
		if err != nil {
			return nil, err
		}

		opts.logger = l
	}

	cache := opts.ttlcache
	if cache == nil {
		if opts.rueidis != nil {
			cache = ttlcache.NewRueidisTTLCache(opts.rueidis, opts.ttl)
		} else {
			cache = ttlcache.NewInMemoryTTLCache(opts.ttl)
		}
	}

	return &Client{
		logger:   opts.logger,
		ttl:      opts.ttl,
		ttlcache: cache,
	}, nil
}

func (c *Client) Get(ctx context.Context, key string) (mo.Option[any], error) {
	value, err := c.ttlcache.Get(ctx, key)
	if err != nil {
		return mo.None[any](), err
	}

	if value.IsPresent() {
		c.logger.Debug("cache hit", zap.String("key", key))
	} else {
		c.logger.Debug("cache miss", zap.String("key", key))
	}

	return value, nil
}

func (c *Client) Set(ctx context.Context, key string, value any) error {
	err := c.ttlcache.Set(ctx, key, value)
	if err != nil {
		return err
	}

	c.logger.Debug("cached value", zap.String("key", key))

	return nil
}

func (c *Client) Clear(ctx context.Context) error {
	err := c.ttlcache.Clear(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug("cache cleared")

	return nil
}

func (c *Client) Stats(ctx context.Context) (ttlcache.Stats, error) {
	return c.ttlcache.Stats(ctx)
}

// MayGet reads key and treats any backend failure as a miss, logging it
// instead of returning it. Useful for callers that always fall back to the
// underlying API anyway.
func (c *Client) MayGet(ctx context.Context, key string) mo.Option[any] {
	may := fo.NewMay[mo.Option[any]]().Use(func(err error, messageArgs ...any) {
		c.logger.Error("failed to read from cache", zap.String("key", key), zap.Error(err))
	})

	return may.Invoke(c.Get(ctx, key))
}
