package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/google/uuid"
)

type RedisIdentityCache struct {
	client *redis.Client
}

func NewRedisIdentityCache(addr string, password string, db int) *RedisIdentityCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisIdentityCache{client: client}
}

func (c *RedisIdentityCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisIdentityCache) Close() error {
	return c.client.Close()
}

func (c *RedisIdentityCache) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (c *RedisIdentityCache) Set(ctx context.Context, userID uuid.UUID, staffIDs []uuid.UUID, ttl time.Duration) error {
	payload, err := json.Marshal(staffIDs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(userID), payload, ttl).Err()
}

func key(userID uuid.UUID) string {
	return "identity:" + userID.String()
}
