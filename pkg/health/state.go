package health

import "time"

// State is the tracked condition of a single provider.
type State struct {
	ConsecutiveFailures int
	CooldownUntil       time.Time
	LastFailure         time.Time
	LastSuccess         time.Time
}

// CoolingDown reports whether the provider is inside a cooldown window.
func (s State) CoolingDown(now time.Time) bool {
	return now.Before(s.CooldownUntil)
}
