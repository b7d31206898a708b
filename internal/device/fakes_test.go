package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"anti_bark/internal/models"
)

// ---- Test doubles ----

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingOutputs remembers the last value of every primitive and the full tone history.
type recordingOutputs struct {
	toneHz     uint32
	tones      []uint32
	indicator  Color
	indicators []Color
	menu       bool
	menuCalls  int
}

func (o *recordingOutputs) Tone(hz uint32) {
	o.toneHz = hz
	o.tones = append(o.tones, hz)
}
func (o *recordingOutputs) Quiet() { o.toneHz = 0 }
func (o *recordingOutputs) SetIndicator(c Color) {
	o.indicator = c
	o.indicators = append(o.indicators, c)
}
func (o *recordingOutputs) SetMenuIndicator(on bool) {
	o.menu = on
	o.menuCalls++
}

type scriptedInput struct {
	keys []Key
}

func (in *scriptedInput) Poll() (Key, bool) {
	if len(in.keys) == 0 {
		return 0, false
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k, true
}

// fixedRandom returns vals in order and then repeats the last one.
type fixedRandom struct {
	vals []uint32
	i    int
}

func (r *fixedRandom) Uint32() uint32 {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i]
	if r.i < len(r.vals)-1 {
		r.i++
	}
	return v
}

type fakeStore struct {
	loadResp *models.Bounds
	loadErr  error
	saveErr  error
	saves    []models.Bounds
	schemas  []string
}

func (s *fakeStore) Load(ctx context.Context, schema string, version int) (*models.Bounds, error) {
	return s.loadResp, s.loadErr
}
func (s *fakeStore) Save(ctx context.Context, schema string, version int, b models.Bounds) error {
	s.saves = append(s.saves, b)
	s.schemas = append(s.schemas, schema)
	return s.saveErr
}

type fakeEvents struct {
	events []models.DeviceEvent
	err    error
}

func (e *fakeEvents) Append(ctx context.Context, ev models.DeviceEvent) error {
	e.events = append(e.events, ev)
	return e.err
}

func (e *fakeEvents) types() []string {
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type rig struct {
	ctl    *Controller
	clock  *fakeClock
	out    *recordingOutputs
	in     *scriptedInput
	store  *fakeStore
	events *fakeEvents
	rnd    *fixedRandom
}

func newRig(t *testing.T, opts Options) *rig {
	t.Helper()
	r := &rig{
		clock:  newFakeClock(),
		out:    &recordingOutputs{},
		in:     &scriptedInput{},
		store:  &fakeStore{},
		events: &fakeEvents{},
		rnd:    &fixedRandom{},
	}
	r.ctl = NewController(Deps{
		Outputs: r.out,
		Input:   r.in,
		Store:   r.store,
		Events:  r.events,
		Random:  r.rnd,
		Clock:   r.clock,
	}, opts, nil)
	return r
}

// startedRig returns a rig that has booted with factory defaults.
func startedRig(t *testing.T) *rig {
	t.Helper()
	r := newRig(t, DefaultOptions())
	r.ctl.Start(context.Background())
	return r
}

func (r *rig) press(t *testing.T, keys ...Key) []bool {
	t.Helper()
	out := make([]bool, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.ctl.HandleKey(context.Background(), k))
	}
	return out
}

var errDiskFull = errors.New("disk full")
