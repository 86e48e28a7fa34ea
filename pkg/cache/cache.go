package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss is returned when a key is absent or its entry has expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry is returned when a stored entry cannot be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is the cache backend contract. Implementations must be safe for
// concurrent use and must never return expired entries from Get.
type Store interface {
	// Get returns the entry for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores an entry under key. Entries whose TTL has already
	// elapsed are silently dropped.
	Set(ctx context.Context, key string, entry *Entry) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
