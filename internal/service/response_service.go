package service

import (
	"context"
	"time"

	"anti_bark/internal/device"
	"anti_bark/internal/logger"
	"anti_bark/internal/models"
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "MODE_CHANGE", "TONE_ON", "BOUNDS_CHANGE", ...
}

// AuthConfig carries the token settings resolved from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// KeySink accepts decoded remote keys for the control loop.
type KeySink interface {
	Push(key device.Key) error
}

// Controller is the part of the device controller the services depend on.
type Controller interface {
	Start(ctx context.Context)
	Run(ctx context.Context, tick time.Duration)
	Snapshot() models.DeviceState
}

// DeviceDeps groups the running device collaborators.
type DeviceDeps struct {
	Controller Controller
	Keys       KeySink
	Log        *logger.Logger
}
