package device

import "time"

// Clock is the time source for timers and the feedback flash.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// OneShotTimer reports a single expiry per Arm.
type OneShotTimer struct {
	clock    Clock
	deadline time.Time
	armed    bool
}

func NewOneShotTimer(clock Clock) *OneShotTimer {
	return &OneShotTimer{clock: clock}
}

// Arm (re)starts the countdown, discarding any pending expiry.
func (t *OneShotTimer) Arm(d time.Duration) {
	t.deadline = t.clock.Now().Add(d)
	t.armed = true
}

// HasExpired is edge-triggered: it returns true once, then the timer is disarmed.
func (t *OneShotTimer) HasExpired() bool {
	if !t.armed || t.clock.Now().Before(t.deadline) {
		return false
	}
	t.armed = false
	return true
}

func (t *OneShotTimer) Cancel() { t.armed = false }

func (t *OneShotTimer) IsArmed() bool { return t.armed }

// Remaining returns the time left before expiry, zero when disarmed or due.
func (t *OneShotTimer) Remaining() time.Duration {
	if !t.armed {
		return 0
	}
	if d := t.deadline.Sub(t.clock.Now()); d > 0 {
		return d
	}
	return 0
}
