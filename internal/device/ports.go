package device

import (
	"context"

	"anti_bark/internal/models"
)

// Config schema identity. A stored record with another version is ignored.
const (
	SchemaID      = "Anti-Bark"
	SchemaVersion = 1
)

// Color of the tri-color indicator.
type Color int

const (
	ColorOff Color = iota
	ColorRed
	ColorGreen
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "RED"
	case ColorGreen:
		return "GREEN"
	case ColorBlue:
		return "BLUE"
	default:
		return "OFF"
	}
}

// Outputs are fire-and-forget driver primitives.
type Outputs interface {
	Tone(hz uint32)
	Quiet()
	SetIndicator(c Color)
	SetMenuIndicator(on bool)
}

// Input yields at most one decoded key per poll; ok=false means no event.
type Input interface {
	Poll() (key Key, ok bool)
}

// RandomSource produces uniformly distributed values.
type RandomSource interface {
	Uint32() uint32
}

// ConfigStore persists the bounds record. Load returns nil when nothing usable is stored.
type ConfigStore interface {
	Load(ctx context.Context, schema string, version int) (*models.Bounds, error)
	Save(ctx context.Context, schema string, version int, b models.Bounds) error
}

// EventSink receives the device history.
type EventSink interface {
	Append(ctx context.Context, e models.DeviceEvent) error
}

// between draws uniformly from [lo, hi].
func between(r RandomSource, lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return r.Uint32()%(hi-lo+1) + lo
}
