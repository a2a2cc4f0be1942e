package rescache

import (
	"context"

	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/nekomeowww/rescache/pkg/cachekey"
	"github.com/nekomeowww/xo"
)

// Helpers for the two structured key conventions, resource_list:{type} for
// whole-collection caching and resource_details:{type}:{id} for single items.
// They format keys over Get and Set directly and do not go through Memoize.

func (c *Client) CacheResourceList(ctx context.Context, resourceType string, resources []any) error {
	err := c.Set(ctx, cachekey.ResourceList1.Format(resourceType), resources)
	if err != nil {
		return err
	}

	c.logger.Debug("cached resource list",
		zap.String("resource_type", resourceType),
		zap.Int("resources", len(resources)),
	)

	return nil
}

func (c *Client) CachedResourceList(ctx context.Context, resourceType string) (mo.Option[[]any], error) {
	value, err := c.Get(ctx, cachekey.ResourceList1.Format(resourceType))
	if err != nil {
		return mo.None[[]any](), err
	}

	cachedValue, ok := value.Get()
	if !ok {
		return mo.None[[]any](), nil
	}

	resources, ok := cachedValue.([]any)
	if !ok {
		return mo.None[[]any](), nil
	}

	return mo.Some(resources), nil
}

func (c *Client) CacheResourceDetails(ctx context.Context, resourceType string, resourceID string, details map[string]any) error {
	err := c.Set(ctx, cachekey.ResourceDetails2.Format(resourceType, resourceID), details)
	if err != nil {
		return err
	}

	c.logger.Debug("cached resource details",
		zap.String("resource_type", resourceType),
		zap.String("resource_id", resourceID),
		zap.String("details", xo.SprintJSON(details)),
	)

	return nil
}

func (c *Client) CachedResourceDetails(ctx context.Context, resourceType string, resourceID string) (mo.Option[map[string]any], error) {
	value, err := c.Get(ctx, cachekey.ResourceDetails2.Format(resourceType, resourceID))
	if err != nil {
		return mo.None[map[string]any](), err
	}

	cachedValue, ok := value.Get()
	if !ok {
		return mo.None[map[string]any](), nil
	}

	details, ok := cachedValue.(map[string]any)
	if !ok {
		return mo.None[map[string]any](), nil
	}

	return mo.Some(details), nil
}
