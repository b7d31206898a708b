package device

import (
	"context"
	"sync"
	"time"

	"anti_bark/internal/logger"
	"anti_bark/internal/models"

	"github.com/google/uuid"
)

// Mode is the top-level operating mode.
type Mode int

const (
	ModeFunctional Mode = iota
	ModeIRConfig
)

func (m Mode) String() string {
	if m == ModeIRConfig {
		return "IR_CONFIG"
	}
	return "FUNCTIONAL"
}

// SubState is the IR menu position, meaningful only in ModeIRConfig.
type SubState int

const (
	SubStateMain SubState = iota
	SubStateSettingLowest
	SubStateSettingHighest
	SubStateFactoryRestore
)

func (s SubState) String() string {
	switch s {
	case SubStateSettingLowest:
		return "SET_LOWEST"
	case SubStateSettingHighest:
		return "SET_HIGHEST"
	case SubStateFactoryRestore:
		return "FACTORY_RESTORE"
	default:
		return "MAIN"
	}
}

// Event types written to the EventSink.
const (
	EventModeChange     = "MODE_CHANGE"
	EventToneOn         = "TONE_ON"
	EventToneOff        = "TONE_OFF"
	EventBoundsChange   = "BOUNDS_CHANGE"
	EventIntervalChange = "INTERVAL_CHANGE"
	EventFactoryRestore = "FACTORY_RESTORE"
	EventKeyRejected    = "KEY_REJECTED"
	EventConfigError    = "CONFIG_ERROR"
)

// Options tune the controller. Zero values are replaced by DefaultOptions.
type Options struct {
	IdleTimeout        time.Duration
	FeedbackFlash      time.Duration
	SelfTestStep       time.Duration // 0 skips the startup LED cycle
	MinIntervalSeconds uint32
	MenuIndicator      bool
}

func DefaultOptions() Options {
	return Options{
		IdleTimeout:        30 * time.Second,
		FeedbackFlash:      250 * time.Millisecond,
		MinIntervalSeconds: MinTimeIntervalSeconds,
		MenuIndicator:      true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = d.IdleTimeout
	}
	if o.FeedbackFlash <= 0 {
		o.FeedbackFlash = d.FeedbackFlash
	}
	if o.MinIntervalSeconds == 0 {
		o.MinIntervalSeconds = d.MinIntervalSeconds
	}
	return o
}

// Deps are the collaborators of the controller. Events may be nil.
type Deps struct {
	Outputs Outputs
	Input   Input
	Store   ConfigStore
	Events  EventSink
	Random  RandomSource
	Clock   Clock
}

// Controller is the mode/state machine of the device. All methods except Snapshot
// must be called from the single control loop.
type Controller struct {
	opts   Options
	out    Outputs
	in     Input
	store  ConfigStore
	events EventSink
	rnd    RandomSource
	clock  Clock
	log    *logger.Logger

	toneTimer *OneShotTimer
	idleTimer *OneShotTimer

	mode      Mode
	sub       SubState
	bounds    models.Bounds
	human     bool
	toneHz    uint32
	indicator Color
	menuLED   bool

	mu       sync.RWMutex
	snapshot models.DeviceState
}

func NewController(deps Deps, opts Options, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		opts:      opts.withDefaults(),
		out:       deps.Outputs,
		in:        deps.Input,
		store:     deps.Store,
		events:    deps.Events,
		rnd:       deps.Random,
		clock:     deps.Clock,
		log:       log,
		toneTimer: NewOneShotTimer(deps.Clock),
		idleTimer: NewOneShotTimer(deps.Clock),
		bounds:    FactoryDefaults(),
	}
}

// Start runs the indicator self-test, loads the stored bounds and enters functional mode.
func (c *Controller) Start(ctx context.Context) {
	c.selfTest()
	c.bounds = FactoryDefaults()
	c.load(ctx)
	c.enterFunctional(ctx, "startup")
	c.publish()
	c.log.Infow("device_ready")
}

// Run ticks the control loop until ctx is canceled, then silences the outputs.
func (c *Controller) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return
		case <-t.C:
			c.Tick(ctx)
		}
	}
}

// Tick performs one loop iteration: idle-timeout check, scheduler step, one input dispatch.
func (c *Controller) Tick(ctx context.Context) {
	defer c.publish()

	if c.idleTimer.HasExpired() {
		c.log.Infow("ir_mode_timeout", "idle", c.opts.IdleTimeout)
		c.enterFunctional(ctx, "idle_timeout")
		return
	}

	c.stepScheduler(ctx)

	if key, ok := c.in.Poll(); ok {
		c.HandleKey(ctx, key)
	}
}

func (c *Controller) Mode() Mode { return c.mode }
func (c *Controller) SubState() SubState { return c.sub }
func (c *Controller) Bounds() models.Bounds { return c.bounds }
func (c *Controller) HumanTest() bool { return c.human }
func (c *Controller) ToneHz() uint32 { return c.toneHz }
func (c *Controller) ToneTimer() *OneShotTimer { return c.toneTimer }
func (c *Controller) IdleTimer() *OneShotTimer { return c.idleTimer }

// Snapshot returns the state published after the last tick. Safe for concurrent use.
func (c *Controller) Snapshot() models.DeviceState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Controller) publish() {
	st := models.DeviceState{
		Mode:          c.mode.String(),
		Bounds:        c.bounds,
		ToneHz:        c.toneHz,
		Indicator:     c.indicator.String(),
		MenuIndicator: c.menuLED,
		HumanTest:     c.human,
		UpdatedAt:     c.clock.Now().UTC(),
	}
	if c.mode == ModeIRConfig {
		st.SubState = c.sub.String()
	}
	c.mu.Lock()
	c.snapshot = st
	c.mu.Unlock()
}

func (c *Controller) enterConfig(ctx context.Context) {
	c.quiet()
	c.setIndicator(ColorOff)
	c.toneTimer.Cancel()

	c.mode = ModeIRConfig
	c.sub = SubStateMain
	c.human = false

	c.setMenuIndicator(true)
	c.idleTimer.Arm(c.opts.IdleTimeout)

	c.log.Infow("ir_mode_on")
	c.appendEvent(ctx, EventModeChange, "Entered IR configuration", map[string]any{
		"from": ModeFunctional.String(), "to": ModeIRConfig.String(),
	})
}

func (c *Controller) enterFunctional(ctx context.Context, reason string) {
	c.log.Infow("config_show",
		"lowest_khz", c.bounds.LowestKHz,
		"highest_khz", c.bounds.HighestKHz,
		"interval_s", c.bounds.IntervalSeconds,
	)

	prev := c.mode
	c.idleTimer.Cancel()
	c.setMenuIndicator(false)
	c.quiet()

	c.mode = ModeFunctional
	c.sub = SubStateMain
	c.human = false

	c.updateIndicator()
	c.armToneTimer()

	if prev == ModeIRConfig {
		c.log.Infow("ir_mode_off", "reason", reason)
		c.appendEvent(ctx, EventModeChange, "Returned to functional mode", map[string]any{
			"from": ModeIRConfig.String(), "to": ModeFunctional.String(), "reason": reason,
		})
	}
}

func (c *Controller) load(ctx context.Context) {
	b, err := c.store.Load(ctx, SchemaID, SchemaVersion)
	switch {
	case err != nil:
		c.log.Warnw("config_load_failed", "err", err)
		c.appendEvent(ctx, EventConfigError, "Stored config unreadable; using factory defaults", map[string]any{"err": err.Error()})
	case b == nil:
		c.log.Infow("config_absent", "schema", SchemaID, "version", SchemaVersion)
	case !ValidBounds(*b):
		c.log.Warnw("config_invalid", "lowest_khz", b.LowestKHz, "highest_khz", b.HighestKHz, "interval_s", b.IntervalSeconds)
		c.appendEvent(ctx, EventConfigError, "Stored config out of range; using factory defaults", *b)
	default:
		c.bounds = *b
		c.log.Infow("config_loaded", "lowest_khz", b.LowestKHz, "highest_khz", b.HighestKHz, "interval_s", b.IntervalSeconds)
	}
}

// save is best effort: failures are logged and never undo the in-memory change.
func (c *Controller) save(ctx context.Context) {
	if err := c.store.Save(ctx, SchemaID, SchemaVersion, c.bounds); err != nil {
		c.log.Errorw("config_save_failed", "err", err)
		c.appendEvent(ctx, EventConfigError, "Failed to persist config", map[string]any{"err": err.Error()})
	}
}

func (c *Controller) appendEvent(ctx context.Context, typ, description string, meta any) {
	if c.events == nil {
		return
	}
	err := c.events.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  c.clock.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil {
		c.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}

func (c *Controller) selfTest() {
	if c.opts.SelfTestStep <= 0 {
		return
	}
	for _, color := range []Color{ColorRed, ColorGreen, ColorBlue} {
		c.setIndicator(color)
		c.clock.Sleep(c.opts.SelfTestStep)
		c.setIndicator(ColorOff)
	}
	if c.opts.MenuIndicator {
		c.out.SetMenuIndicator(true)
		c.clock.Sleep(c.opts.SelfTestStep)
		c.out.SetMenuIndicator(false)
	}
}

func (c *Controller) shutdown() {
	c.quiet()
	c.setIndicator(ColorOff)
	c.setMenuIndicator(false)
	c.log.Infow("device_stopped")
}

func (c *Controller) playTone(hz uint32) {
	c.toneHz = hz
	c.out.Tone(hz)
}

func (c *Controller) quiet() {
	c.toneHz = 0
	c.out.Quiet()
}

func (c *Controller) setIndicator(color Color) {
	c.indicator = color
	c.out.SetIndicator(color)
}

func (c *Controller) setMenuIndicator(on bool) {
	if !c.opts.MenuIndicator || c.menuLED == on {
		return
	}
	c.menuLED = on
	c.out.SetMenuIndicator(on)
}
