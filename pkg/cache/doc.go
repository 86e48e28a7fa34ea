// Package cache provides TTL-based storage for resolved query results.
//
// Two backends implement the Store interface: an in-process map with a
// background janitor (the default) and a Redis-backed store for deployments
// that share a cache across replicas. Entries carry their own expiry so both
// backends age data identically; callers never see an expired entry.
//
// Basic usage:
//
//	store := cache.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	entry := &cache.Entry{
//		Data:      payload,
//		CachedAt:  time.Now(),
//		ExpiresAt: time.Now().Add(30 * time.Second),
//	}
//	if err := store.Set(ctx, key, entry); err != nil {
//		log.Warn().Err(err).Msg("cache write failed")
//	}
//
//	got, err := store.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// resolve fresh
//	}
package cache
