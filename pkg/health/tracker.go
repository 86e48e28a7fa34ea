// Package health tracks per-provider failure streaks and applies short
// cooldowns so a flapping upstream is skipped instead of hammered.
package health

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Tracker records provider outcomes and decides whether a provider should
// be attempted. A provider that fails threshold times in a row enters a
// cooldown; any success resets the streak.
type Tracker struct {
	mu        sync.Mutex
	states    map[string]*State
	threshold int
	cooldown  time.Duration
	logger    zerolog.Logger

	now func() time.Time
}

// NewTracker creates a tracker. threshold <= 0 disables cooldowns entirely.
func NewTracker(threshold int, cooldown time.Duration, logger zerolog.Logger) *Tracker {
	return &Tracker{
		states:    make(map[string]*State),
		threshold: threshold,
		cooldown:  cooldown,
		logger:    logger,
		now:       time.Now,
	}
}

// Allow reports whether the provider should be attempted right now.
func (t *Tracker) Allow(provider string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[provider]
	if !ok {
		return true
	}
	return !state.CoolingDown(t.now())
}

// RecordSuccess clears the failure streak and any active cooldown.
func (t *Tracker) RecordSuccess(provider string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.state(provider)
	state.ConsecutiveFailures = 0
	state.CooldownUntil = time.Time{}
	state.LastSuccess = t.now()
	consecutiveFailures.WithLabelValues(provider).Set(0)
}

// RecordFailure bumps the failure streak and starts a cooldown once the
// streak reaches the threshold.
func (t *Tracker) RecordFailure(provider string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	state := t.state(provider)
	state.ConsecutiveFailures++
	state.LastFailure = now
	consecutiveFailures.WithLabelValues(provider).Set(float64(state.ConsecutiveFailures))

	if t.threshold > 0 && state.ConsecutiveFailures >= t.threshold && !state.CoolingDown(now) {
		state.CooldownUntil = now.Add(t.cooldown)
		cooldownsTotal.WithLabelValues(provider).Inc()
		t.logger.Warn().
			Str("provider", provider).
			Int("consecutive_failures", state.ConsecutiveFailures).
			Time("cooldown_until", state.CooldownUntil).
			Msg("Provider entering cooldown")
	}
}

// GetState returns a copy of the provider's current state.
func (t *Tracker) GetState(provider string) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state, ok := t.states[provider]; ok {
		return *state
	}
	return State{}
}

func (t *Tracker) state(provider string) *State {
	state, ok := t.states[provider]
	if !ok {
		state = &State{}
		t.states[provider] = state
	}
	return state
}
