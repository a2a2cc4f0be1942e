package rescache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nekomeowww/rescache/pkg/cachekey"
)

// CachedFunc is the call shape Memoize wraps and returns.
type CachedFunc[T any] func(ctx context.Context, args ...any) (T, error)

// Memoize returns fn wrapped with read-through caching on c. The cache key is
// derived from prefix, name and a digest of the JSON-encoded arguments, so
// identical argument values land on the same key regardless of map iteration
// order. fn only runs on a miss, which means its side effects are skipped on
// hits. Errors from fn propagate unchanged and are never cached, every
// subsequent call re-attempts the underlying operation.
func Memoize[T any](c *Client, prefix string, name string, fn CachedFunc[T]) CachedFunc[T] {
	return func(ctx context.Context, args ...any) (T, error) {
		var zero T

		key, err := callKey(prefix, name, args)
		if err != nil {
			// arguments that cannot be keyed just bypass the cache
			c.logger.Debug("failed to derive cache key, calling through",
				zap.String("prefix", prefix),
				zap.String("name", name),
				zap.Error(err),
			)

			return fn(ctx, args...)
		}

		cached := c.MayGet(ctx, key)
		if value, ok := cached.Get(); ok {
			if typed, ok := value.(T); ok {
				return typed, nil
			}
		}

		result, err := fn(ctx, args...)
		if err != nil {
			return zero, err
		}

		err = c.Set(ctx, key, result)
		if err != nil {
			c.logger.Error("failed to cache call result", zap.String("key", key), zap.Error(err))
		}

		return result, nil
	}
}

func callKey(prefix string, name string, args []any) (string, error) {
	jsonArgs, err := json.Marshal(args)
	if err != nil {
		return "", err
	}

	argsHash := fmt.Sprintf("%x", sha256.Sum256(jsonArgs))[0:16]

	return cachekey.MemoizedCall3.Format(prefix, name, argsHash), nil
}
