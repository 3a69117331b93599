package cache

import (
	"context"
	"encoding/json"
	"time"
)

// StatusCatalogKey stores the full status catalog; it is read on every
// request listing and changes only when the catalog is seeded.
const StatusCatalogKey = "statuses:catalog"

// StatusCatalogTTL bounds staleness if an invalidation is ever missed.
const StatusCatalogTTL = 10 * time.Minute

// Aside implements the cache-aside pattern: read dest from the key, or on a
// miss run load (which must fill dest) and store the result. A nil client
// degrades to calling load directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		if raw, err := client.Get(ctx, key).Result(); err == nil {
			if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
				return nil
			}
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}

// Invalidate removes a key; a nil client is a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateStatusCatalog drops the cached catalog after a seed.
func InvalidateStatusCatalog(ctx context.Context) {
	Invalidate(ctx, StatusCatalogKey)
}
