package ports

import (
	"context"
	"time"
)

// CatalogCache is the read-through cache in front of catalog queries.
// Get decodes a cached value into dest and reports whether the key was
// present; cache failures are treated as misses by callers.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}
