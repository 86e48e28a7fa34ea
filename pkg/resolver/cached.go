package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shwzss/TikIQ/pkg/cache"
)

// cachedOutcome is the stored form of a resolution. Exhaustion results are
// cached too so a dead upstream is not re-probed on every request.
type cachedOutcome struct {
	Outcome     Outcome `json:"outcome"`
	Unavailable bool    `json:"unavailable,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// CachedResolver wraps a QueryResolver with a TTL cache keyed on the
// normalized query. Cache failures degrade to direct resolution; they are
// logged but never surfaced to callers.
type CachedResolver struct {
	resolver QueryResolver
	store    cache.Store
	logger   zerolog.Logger

	now func() time.Time
}

// NewCached wraps resolver with store.
func NewCached(resolver QueryResolver, store cache.Store, logger zerolog.Logger) *CachedResolver {
	return &CachedResolver{
		resolver: resolver,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve serves from cache when a fresh entry exists, otherwise resolves
// and stores the result for the query's TTL.
func (c *CachedResolver) Resolve(ctx context.Context, q Query) (Outcome, error) {
	key := q.CacheKey()

	entry, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var stored cachedOutcome
		if decodeErr := json.Unmarshal(entry.Data, &stored); decodeErr != nil {
			c.logger.Warn().Err(decodeErr).Str("key", key).Msg("Discarding undecodable cache entry")
			break
		}
		if stored.Unavailable {
			return Outcome{}, &NoSourceError{Kind: q.Kind, Reason: stored.Reason}
		}
		return stored.Outcome, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, resolving directly")
	}

	outcome, resolveErr := c.resolver.Resolve(ctx, q)

	stored := cachedOutcome{Outcome: outcome}
	if resolveErr != nil {
		var noSource *NoSourceError
		if !errors.As(resolveErr, &noSource) {
			// Unexpected errors (context cancellation and the like)
			// are not worth pinning in the cache.
			return outcome, resolveErr
		}
		stored = cachedOutcome{Unavailable: true, Reason: noSource.Reason}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("Failed to encode outcome for cache")
		return outcome, resolveErr
	}

	now := c.now()
	setErr := c.store.Set(ctx, key, &cache.Entry{
		Data:      data,
		CachedAt:  now,
		ExpiresAt: now.Add(q.TTL()),
	})
	if setErr != nil {
		c.logger.Warn().Err(setErr).Str("key", key).Msg("Cache write failed")
	}

	return outcome, resolveErr
}
