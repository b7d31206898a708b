package device

import (
	"context"

	"anti_bark/internal/models"
)

// frequencyEdit decides a bound change without touching state.
type frequencyEdit func(models.Bounds) (uint32, bool)

// HandleKey dispatches one remote key and reports whether it was accepted.
// While in IR config every key gets a green/red flash and accepted keys restart the idle timeout.
func (c *Controller) HandleKey(ctx context.Context, key Key) bool {
	ok := c.dispatch(ctx, key)
	c.log.Infow("ir_key", "key", key.String(), "accepted", ok, "mode", c.mode.String(), "sub_state", c.sub.String())

	if !ok {
		c.appendEvent(ctx, EventKeyRejected, "Key rejected", map[string]any{
			"key": key.String(), "mode": c.mode.String(), "sub_state": c.sub.String(),
		})
	}

	if c.mode != ModeIRConfig {
		return ok
	}

	c.flash(ok)
	if ok {
		c.idleTimer.Arm(c.opts.IdleTimeout)
	}
	return ok
}

func (c *Controller) dispatch(ctx context.Context, key Key) bool {
	if c.mode == ModeFunctional {
		if key == KeyOK {
			c.enterConfig(ctx)
			return true
		}
		return false
	}

	if d, isDigit := key.Digit(); isDigit {
		return c.setInterval(ctx, IntervalForDigit(d))
	}

	switch key {
	case KeyOK:
		return c.onOK(ctx)
	case KeyLeft:
		c.selectBound(SubStateSettingLowest, c.bounds.LowestKHz)
		return true
	case KeyRight:
		c.selectBound(SubStateSettingHighest, c.bounds.HighestKHz)
		return true
	case KeyUp:
		switch c.sub {
		case SubStateSettingLowest:
			return c.editFrequency(ctx, "lowest", &c.bounds.LowestKHz, RaiseLowest)
		case SubStateSettingHighest:
			return c.editFrequency(ctx, "highest", &c.bounds.HighestKHz, RaiseHighest)
		}
	case KeyDown:
		switch c.sub {
		case SubStateSettingLowest:
			return c.editFrequency(ctx, "lowest", &c.bounds.LowestKHz, LowerLowest)
		case SubStateSettingHighest:
			return c.editFrequency(ctx, "highest", &c.bounds.HighestKHz, LowerHighest)
		}
	case KeyStar:
		switch c.sub {
		case SubStateMain:
			c.sub = SubStateFactoryRestore
			return true
		case SubStateFactoryRestore:
			c.sub = SubStateMain
			return true
		}
	case KeyHash:
		switch c.sub {
		case SubStateMain:
			c.toggleHumanTest()
			return true
		case SubStateFactoryRestore:
			c.restoreFactoryDefaults(ctx)
			return true
		}
	}
	return false
}

// onOK leaves the menu from Main, otherwise steps back to Main.
func (c *Controller) onOK(ctx context.Context) bool {
	if c.sub == SubStateMain {
		c.enterFunctional(ctx, "remote")
		return true
	}
	c.quiet()
	c.sub = SubStateMain
	return true
}

// selectBound enters an editing sub-state and previews the bound's current tone.
func (c *Controller) selectBound(sub SubState, khz uint32) {
	c.sub = sub
	c.human = false
	c.playTone(khz * 1000)
	c.log.Infow("bound_selected", "sub_state", sub.String(), "khz", khz)
}

func (c *Controller) editFrequency(ctx context.Context, name string, field *uint32, edit frequencyEdit) bool {
	next, ok := edit(c.bounds)
	if !ok {
		c.log.Infow("frequency_edit_rejected", "bound", name, "khz", *field,
			"lowest_khz", c.bounds.LowestKHz, "highest_khz", c.bounds.HighestKHz)
		return false
	}
	prev := *field
	*field = next

	c.log.Infow("frequency_set", "bound", name, "khz", next)
	c.playTone(next * 1000)
	c.save(ctx)
	c.appendEvent(ctx, EventBoundsChange, name+" frequency changed", map[string]any{
		"bound": name, "from_khz": prev, "to_khz": next,
	})
	return true
}

func (c *Controller) setInterval(ctx context.Context, seconds uint32) bool {
	prev := c.bounds.IntervalSeconds
	c.bounds.IntervalSeconds = seconds
	c.save(ctx)
	c.log.Infow("interval_set", "seconds", seconds)
	c.appendEvent(ctx, EventIntervalChange, "Max. time interval changed", map[string]any{
		"from_s": prev, "to_s": seconds,
	})
	return true
}

func (c *Controller) restoreFactoryDefaults(ctx context.Context) {
	c.bounds = FactoryDefaults()
	c.save(ctx)
	c.sub = SubStateMain
	c.log.Infow("factory_defaults_restored")
	c.appendEvent(ctx, EventFactoryRestore, "Restored to factory defaults", c.bounds)
}

// toggleHumanTest flips the liveness cue: a fixed audible tone while set.
func (c *Controller) toggleHumanTest() {
	c.human = !c.human
	if c.human {
		c.playTone(HumanTestToneHz)
	} else {
		c.quiet()
	}
	c.log.Infow("human_test", "on", c.human)
}

// flash blinks the indicator for the feedback duration, blocking the loop meanwhile.
func (c *Controller) flash(ok bool) {
	color := ColorRed
	if ok {
		color = ColorGreen
	}
	c.setIndicator(color)
	c.clock.Sleep(c.opts.FeedbackFlash)
	c.setIndicator(ColorOff)
}
