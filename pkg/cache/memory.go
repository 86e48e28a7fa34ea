package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default in-process backend. Expired entries are
// reaped lazily on Get and periodically by a janitor goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a memory-backed store. cleanupInterval controls
// how often the janitor sweeps expired entries; values <= 0 disable the
// janitor and rely on lazy expiry alone.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]*Entry),
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.janitor(cleanupInterval)
	}
	return m
}

func (m *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		recordMiss("memory")
		return nil, ErrCacheMiss
	}
	if entry.IsExpired() {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		recordMiss("memory")
		return nil, ErrCacheMiss
	}

	recordHit("memory")
	return entry, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, entry *Entry) error {
	if entry == nil {
		return ErrInvalidEntry
	}
	if entry.TTL() <= 0 {
		return nil
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close stops the janitor. The store remains usable afterwards but no
// longer sweeps in the background.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// Len returns the number of stored entries, including any not yet swept.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *MemoryStore) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.entries {
		if entry.IsExpired() {
			delete(m.entries, key)
		}
	}
}
