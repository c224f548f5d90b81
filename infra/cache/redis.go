package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisClient holds the session allowlist. A session exists exactly as long
// as its key does; expiry and logout are both just key removal.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, uint64(userID), ttl).Err()
}

func (r *RedisClient) GetSession(ctx context.Context, sessionID string) (uint, error) {
	v, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Uint64()
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func (r *RedisClient) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
