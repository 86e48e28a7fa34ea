// Package resolver turns queries into data by walking an ordered provider
// cascade. Providers are tried in priority order; a provider that is not
// configured or is cooling down is skipped, a provider that errors is
// logged and passed over, and the first success wins.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shwzss/TikIQ/pkg/health"
	"github.com/shwzss/TikIQ/pkg/provider"
)

// SourceFallback marks an Outcome synthesized locally because no provider
// could serve a user lookup.
const SourceFallback = "fallback"

// Outcome is a resolved result: the upstream payload plus which provider
// produced it.
type Outcome struct {
	Source string          `json:"source"`
	Data   json.RawMessage `json:"data"`
}

// NoSourceError reports that every provider was skipped or failed for a
// query kind that has no fallback payload.
type NoSourceError struct {
	Kind   Kind
	Reason string
}

func (e *NoSourceError) Error() string {
	return fmt.Sprintf("no data source available for %s: %s", e.Kind, e.Reason)
}

// QueryResolver resolves queries to outcomes.
type QueryResolver interface {
	Resolve(ctx context.Context, q Query) (Outcome, error)
}

// Resolver walks the provider cascade. The provider slice order is the
// priority order.
type Resolver struct {
	providers []provider.Provider
	health    *health.Tracker
	timeout   time.Duration
	logger    zerolog.Logger
}

// New creates a Resolver. timeout bounds a whole Resolve call across all
// providers; <= 0 means no overall bound beyond the caller's context.
func New(timeout time.Duration, tracker *health.Tracker, logger zerolog.Logger, providers ...provider.Provider) *Resolver {
	return &Resolver{
		providers: providers,
		health:    tracker,
		timeout:   timeout,
		logger:    logger,
	}
}

// Resolve tries each provider in order and returns the first success. When
// all providers are exhausted, user lookups get a synthesized fallback
// Outcome and other kinds get a NoSourceError.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Outcome, error) {
	caller := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	attempted := 0
	for _, p := range r.providers {
		source := p.Source()

		if !p.Configured() {
			providerSkips.WithLabelValues(source, "not_configured").Inc()
			continue
		}
		if r.health != nil && !r.health.Allow(source) {
			providerSkips.WithLabelValues(source, "cooldown").Inc()
			r.logger.Warn().
				Str("provider", source).
				Str("kind", string(q.Kind)).
				Msg("Skipping provider in cooldown")
			continue
		}

		attempted++
		data, err := r.attempt(ctx, p, q)
		if errors.Is(err, provider.ErrNotConfigured) {
			attempted--
			providerSkips.WithLabelValues(source, "not_configured").Inc()
			continue
		}
		if err != nil {
			// A canceled caller fails every attempt; surface its
			// error instead of exhaustion, and leave provider
			// health untouched.
			if callerErr := caller.Err(); callerErr != nil {
				return Outcome{}, callerErr
			}
			if r.health != nil {
				r.health.RecordFailure(source)
			}
			r.logger.Warn().
				Err(err).
				Str("provider", source).
				Str("kind", string(q.Kind)).
				Msg("Provider attempt failed, trying next")
			continue
		}

		if r.health != nil {
			r.health.RecordSuccess(source)
		}
		resolutionsTotal.WithLabelValues(string(q.Kind), source).Inc()
		r.logger.Debug().
			Str("provider", source).
			Str("kind", string(q.Kind)).
			Msg("Query resolved")
		return Outcome{Source: source, Data: data}, nil
	}

	return r.exhausted(q, attempted)
}

func (r *Resolver) attempt(ctx context.Context, p provider.Provider, q Query) (json.RawMessage, error) {
	switch q.Kind {
	case KindUserLookup:
		return p.SearchUser(ctx, q.Params["username"], paramInt(q, "count", DefaultUserVideoCount))
	case KindVideoStats:
		return p.VideoStats(ctx, q.Params["video_id"])
	case KindTrendingHashtags:
		return p.TrendingHashtags(ctx, paramInt(q, "count", DefaultHashtagCount))
	default:
		return nil, fmt.Errorf("unknown query kind %q", q.Kind)
	}
}

type fallbackPayload struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

func (r *Resolver) exhausted(q Query, attempted int) (Outcome, error) {
	reason := "no provider configured"
	if attempted > 0 {
		reason = fmt.Sprintf("all %d configured providers failed", attempted)
	}
	unavailableTotal.WithLabelValues(string(q.Kind)).Inc()

	if q.Kind == KindUserLookup {
		payload := fallbackPayload{
			Error:    "no_fallback",
			Message:  "No data source available. Set TIKTOK_CLIENT_KEY and TIKTOK_CLIENT_SECRET, set TIKAPI_KEY, or enable USE_UNOFFICIAL.",
			Username: q.Username(),
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return Outcome{}, fmt.Errorf("marshal fallback payload: %w", err)
		}
		resolutionsTotal.WithLabelValues(string(q.Kind), SourceFallback).Inc()
		return Outcome{Source: SourceFallback, Data: data}, nil
	}

	return Outcome{}, &NoSourceError{Kind: q.Kind, Reason: reason}
}

func paramInt(q Query, name string, fallback int) int {
	n, err := strconv.Atoi(q.Params[name])
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
