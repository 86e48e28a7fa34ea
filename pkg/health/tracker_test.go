package health

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestTracker(threshold int, cooldown time.Duration) *Tracker {
	return NewTracker(threshold, cooldown, zerolog.Nop())
}

func TestTracker_AllowsUnknownProvider(t *testing.T) {
	tr := newTestTracker(3, time.Minute)

	if !tr.Allow("official") {
		t.Error("Unknown provider should be allowed")
	}
}

func TestTracker_ThresholdTriggersCooldown(t *testing.T) {
	tr := newTestTracker(3, time.Minute)

	tr.RecordFailure("official")
	tr.RecordFailure("official")
	if !tr.Allow("official") {
		t.Error("Provider below threshold should still be allowed")
	}

	tr.RecordFailure("official")
	if tr.Allow("official") {
		t.Error("Provider at threshold should be in cooldown")
	}

	state := tr.GetState("official")
	if state.ConsecutiveFailures != 3 {
		t.Errorf("ConsecutiveFailures = %d, want 3", state.ConsecutiveFailures)
	}
	if state.CooldownUntil.IsZero() {
		t.Error("CooldownUntil should be set")
	}
}

func TestTracker_CooldownExpires(t *testing.T) {
	tr := newTestTracker(1, 50*time.Millisecond)

	tr.RecordFailure("tikapi")
	if tr.Allow("tikapi") {
		t.Error("Provider should be in cooldown")
	}

	time.Sleep(80 * time.Millisecond)
	if !tr.Allow("tikapi") {
		t.Error("Provider should be allowed after cooldown expires")
	}
}

func TestTracker_SuccessResetsStreak(t *testing.T) {
	tr := newTestTracker(3, time.Minute)

	tr.RecordFailure("unofficial")
	tr.RecordFailure("unofficial")
	tr.RecordSuccess("unofficial")

	state := tr.GetState("unofficial")
	if state.ConsecutiveFailures != 0 {
		t.Errorf("ConsecutiveFailures = %d, want 0 after success", state.ConsecutiveFailures)
	}
	if state.LastSuccess.IsZero() {
		t.Error("LastSuccess should be set")
	}
}

func TestTracker_SuccessClearsCooldown(t *testing.T) {
	tr := newTestTracker(1, time.Hour)

	tr.RecordFailure("official")
	if tr.Allow("official") {
		t.Fatal("Provider should be in cooldown")
	}

	tr.RecordSuccess("official")
	if !tr.Allow("official") {
		t.Error("Success should clear the cooldown")
	}
}

func TestTracker_ZeroThresholdDisablesCooldowns(t *testing.T) {
	tr := newTestTracker(0, time.Minute)

	for i := 0; i < 10; i++ {
		tr.RecordFailure("official")
	}
	if !tr.Allow("official") {
		t.Error("Cooldowns should be disabled with zero threshold")
	}
}

func TestTracker_ProvidersAreIndependent(t *testing.T) {
	tr := newTestTracker(1, time.Minute)

	tr.RecordFailure("official")
	if tr.Allow("official") {
		t.Error("official should be in cooldown")
	}
	if !tr.Allow("tikapi") {
		t.Error("tikapi should be unaffected")
	}
}
