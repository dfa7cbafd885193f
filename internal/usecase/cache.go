package usecase

import (
	"context"
	"time"
)

// Cache is the slice of the Redis layer the usecases consume. A nil Cache
// is always acceptable, every caller treats a miss and a disabled cache the
// same way.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateJobLists(ctx context.Context) error
}
