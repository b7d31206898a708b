package device_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"anti_bark/internal/device"
	"anti_bark/internal/hardware"
	"anti_bark/internal/models"
	"anti_bark/internal/repository"
	"anti_bark/internal/repository/db"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time        { return c.now }
func (c *manualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

type bench struct {
	ctl   *device.Controller
	keys  *hardware.KeyQueue
	out   *hardware.SimOutputs
	clock *manualClock
	repos *repository.Repository
}

func boot(t *testing.T, path string) *bench {
	t.Helper()
	conn, err := db.InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	b := &bench{
		keys:  hardware.NewKeyQueue(8),
		out:   hardware.NewSimOutputs(nil),
		clock: &manualClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		repos: repository.NewRepository(conn),
	}
	b.ctl = device.NewController(device.Deps{
		Outputs: b.out,
		Input:   b.keys,
		Store:   b.repos.ConfigRepo,
		Events:  b.repos.EventRepo,
		Random:  hardware.NewRandom(1),
		Clock:   b.clock,
	}, device.DefaultOptions(), nil)
	b.ctl.Start(context.Background())
	return b
}

// press queues keys through the simulated receiver and ticks once per key.
func (b *bench) press(t *testing.T, keys ...device.Key) {
	t.Helper()
	for _, k := range keys {
		if err := b.keys.Push(k); err != nil {
			t.Fatalf("push %v: %v", k, err)
		}
		b.ctl.Tick(context.Background())
	}
}

func TestBench_EditsSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvm.db")

	first := boot(t, path)
	if got := first.ctl.Bounds(); got != device.FactoryDefaults() {
		t.Fatalf("fresh store must boot with factory defaults, got %+v", got)
	}

	first.press(t,
		device.KeyOK,                    // enter IR config
		device.KeyLeft, device.KeyUp,    // lowest 20 -> 25
		device.KeyRight, device.KeyDown, // highest 65 -> 60
		device.KeyDigit4,                // interval 40 s
		device.KeyOK, device.KeyOK,      // back to Main, then leave
	)

	want := models.Bounds{LowestKHz: 25, HighestKHz: 60, IntervalSeconds: 40}
	if got := first.ctl.Bounds(); got != want {
		t.Fatalf("bounds after edits = %+v; want %+v", got, want)
	}
	if first.ctl.Mode() != device.ModeFunctional {
		t.Fatalf("mode = %v; want functional", first.ctl.Mode())
	}

	second := boot(t, path)
	if got := second.ctl.Bounds(); got != want {
		t.Fatalf("bounds after restart = %+v; want %+v", got, want)
	}

	events, err := second.repos.EventRepo.List(context.Background(), time.Time{}, time.Time{}, device.EventBoundsChange)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("BOUNDS_CHANGE events = %d; want 2", len(events))
	}
}

func TestBench_OutputsFollowController(t *testing.T) {
	b := boot(t, filepath.Join(t.TempDir(), "nvm.db"))

	b.press(t, device.KeyOK, device.KeyLeft)

	hz, color, menu := b.out.Levels()
	if hz != 20000 {
		t.Fatalf("preview tone = %d Hz; want 20000", hz)
	}
	if color != device.ColorOff {
		t.Fatalf("indicator after flash = %v; want OFF", color)
	}
	if !menu {
		t.Fatalf("menu indicator must be on in IR config")
	}

	st := b.ctl.Snapshot()
	if st.Mode != "IR_CONFIG" || st.SubState != "SET_LOWEST" || st.ToneHz != 20000 {
		t.Fatalf("snapshot = %+v", st)
	}

	// The idle timeout returns the device to functional mode without any key.
	b.clock.Sleep(device.DefaultOptions().IdleTimeout + time.Second)
	b.ctl.Tick(context.Background())

	if b.ctl.Mode() != device.ModeFunctional {
		t.Fatalf("mode = %v; want functional after idle timeout", b.ctl.Mode())
	}
	if _, _, menu := b.out.Levels(); menu {
		t.Fatalf("menu indicator must be off in functional mode")
	}
}
