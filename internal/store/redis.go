package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the blob under the fixed key in Redis. No TTL: the
// collection lives for the lifetime of the store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisStore{client: rdb}, nil
}

func (r *RedisStore) Load(ctx context.Context) (string, bool, error) {
	raw, err := r.client.Get(ctx, BlobKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load blob %s: %w", BlobKey, err)
	}
	return raw, true, nil
}

func (r *RedisStore) Save(ctx context.Context, raw string) error {
	if err := r.client.Set(ctx, BlobKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save blob %s: %w", BlobKey, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
