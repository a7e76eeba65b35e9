package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LocalityCache - общий для всех экземпляров кэш населенных пунктов по координатам
type LocalityCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewLocalityCache(redisClient *redis.Client, ttl time.Duration) *LocalityCache {
	return &LocalityCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetLocality возвращает пустую строку при промахе
func (c *LocalityCache) GetLocality(ctx context.Context, key string) (string, error) {
	val, err := c.redisClient.Get(ctx, localityKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get locality from cache: %w", err)
	}
	return val, nil
}

func (c *LocalityCache) SetLocality(ctx context.Context, key, locality string) error {
	if err := c.redisClient.Set(ctx, localityKey(key), locality, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set locality in cache: %w", err)
	}
	return nil
}

func localityKey(key string) string {
	return fmt.Sprintf("locality:%s", key)
}
