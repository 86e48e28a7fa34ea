package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newTestRedisStore connects to a local Redis on DB 15 and skips the test
// when none is available. Run a local instance with:
//
//	docker run -d -p 6379:6379 redis:7-alpine
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available on localhost:6379: %v", err)
	}

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("FlushDB failed: %v", err)
	}

	store := NewRedisStore(client)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore_SetGet(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	entry := newTestEntry(`{"source": "tikapi"}`, time.Minute)
	if err := store.Set(ctx, "tikiq:video_stats:video_id=abc", entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "tikiq:video_stats:video_id=abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Data) != `{"source": "tikapi"}` {
		t.Errorf("Data = %s", got.Data)
	}
	if got.TTL() <= 0 {
		t.Errorf("TTL = %v, want positive", got.TTL())
	}
}

func TestRedisStore_Miss(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	entry := newTestEntry(`{}`, 100*time.Millisecond)
	if err := store.Set(ctx, "short", entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	store.Set(ctx, "key", newTestEntry(`{}`, time.Minute))
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestRedisStore_InvalidPayload(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.client.Set(ctx, "garbage", "not json", time.Minute).Err(); err != nil {
		t.Fatalf("raw Set failed: %v", err)
	}

	_, err := store.Get(ctx, "garbage")
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Expected ErrInvalidEntry, got %v", err)
	}
}

func TestNewRedisStore_NilClientPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil client")
		}
	}()
	NewRedisStore(nil)
}
