package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"feedback-board/internal/domain"
)

const redisKeyPrefix = "page:"

// RedisCache реализует domain.PageCache через Redis.
type RedisCache struct {
	client *redis.Client
}

var _ domain.PageCache = (*RedisCache)(nil)

// NewRedis создаёт кэш.
func NewRedis(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set задаёт значение.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

// Get возвращает значение или domain.ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	return data, err
}

// Delete удаляет значение.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, redisKeyPrefix+key).Err()
}
