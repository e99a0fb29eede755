package cache

import (
	"context"
	"time"
)

// Cache is the hot-layer JSON cache in front of Postgres lookups. It is
// purely an accelerator: every value can be rebuilt from the database.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
