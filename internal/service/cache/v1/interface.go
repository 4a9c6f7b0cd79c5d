package cache

import (
	"context"
	"time"
)

// Cache defines a best-effort key/value store with expiry. Both operations may fail
// independently and their failures must never propagate past the calling service.
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
