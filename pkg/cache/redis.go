package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the shared backend for multi-replica deployments. Entries
// are stored as JSON with a Redis TTL matching the entry expiry, so Redis
// evicts on its own and Get rarely sees stale data.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client. The caller owns the
// client's lifecycle up to Close.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("cache: redis client is required")
	}
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		recordMiss("redis")
		return nil, ErrCacheMiss
	}
	if err != nil {
		recordError("get")
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		recordError("decode")
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis TTL eviction can lag behind the entry expiry slightly.
	if entry.IsExpired() {
		recordMiss("redis")
		return nil, ErrCacheMiss
	}

	recordHit("redis")
	return &entry, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, entry *Entry) error {
	if entry == nil {
		return ErrInvalidEntry
	}
	ttl := entry.TTL()
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		recordError("encode")
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		recordError("set")
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		recordError("delete")
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
