package ttlcache

import (
	"context"
	"errors"
	"time"

	"github.com/samber/mo"
)

// DefaultTTL is the freshness window applied when no other TTL is configured.
const DefaultTTL = 300 * time.Second

var ErrEmptyKey = errors.New("cache key must not be empty")

// Stats reports raw storage numbers. EntryCount includes rows already past
// their TTL that no access has purged yet, eviction is lazy and there is no
// background sweeper. ApproxSizeBytes sums the rendered length of each stored
// value, it is an estimate rather than memory accounting.
type Stats struct {
	EntryCount      int
	ApproxSizeBytes int
}

// TTLCache is a key/value store with one fixed freshness window per
// instance. Implementations are safe for concurrent use.
type TTLCache interface {
	Get(context.Context, string) (mo.Option[any], error)
	Set(context.Context, string, any) error
	Clear(context.Context) error
	Stats(context.Context) (Stats, error)
}
