package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
