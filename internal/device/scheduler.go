package device

import (
	"context"
	"time"
)

// stepScheduler toggles tone/silence when the tone timer fires. Nothing happens
// outside functional mode, so an expiry left over from before IR config is never acted on.
func (c *Controller) stepScheduler(ctx context.Context) {
	if c.mode != ModeFunctional {
		return
	}
	if !c.toneTimer.HasExpired() {
		return
	}

	if c.toneHz == 0 {
		khz := between(c.rnd, c.bounds.LowestKHz, c.bounds.HighestKHz)
		c.playTone(khz * 1000)
		c.log.Infow("tone_started", "khz", khz)
		c.appendEvent(ctx, EventToneOn, "Tone started", map[string]any{"khz": khz})
	} else {
		c.quiet()
		c.log.Infow("tone_silent")
		c.appendEvent(ctx, EventToneOff, "Tone stopped", nil)
	}

	c.updateIndicator()
	c.armToneTimer()
}

// armToneTimer draws a delay from [MinIntervalSeconds, interval] seconds.
func (c *Controller) armToneTimer() {
	secs := between(c.rnd, c.opts.MinIntervalSeconds, c.bounds.IntervalSeconds)
	c.toneTimer.Arm(time.Duration(secs) * time.Second)
	c.log.Debugw("tone_timer_armed", "seconds", secs)
}

// updateIndicator shows green while emitting and blue while silent.
func (c *Controller) updateIndicator() {
	if c.toneHz == 0 {
		c.setIndicator(ColorBlue)
		return
	}
	c.setIndicator(ColorGreen)
}
