package prove

import (
	"context"
	"time"

	"kyc-gateway/internal/platform/redis"
)

// RedisTokenCache adapts the shared redis client to the TokenCache surface.
type RedisTokenCache struct {
	client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{client: client}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.GetString(ctx, key)
}

func (c *RedisTokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.SetString(ctx, key, value, ttl)
}
