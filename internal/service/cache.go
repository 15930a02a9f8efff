package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache defines the subset of the Redis client the services depend on,
// keeping them testable without a live server. *redis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}
