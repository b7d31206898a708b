package service

import (
	"context"
	"time"

	"anti_bark/internal/logger"
)

// DeviceService owns the control loop goroutine.
type DeviceService struct {
	ctl Controller
	log *logger.Logger
}

func NewDeviceService(ctl Controller, log *logger.Logger) *DeviceService {
	if log == nil {
		log = logger.Nop()
	}
	return &DeviceService{ctl: ctl, log: log}
}

// Run boots the controller (self-test, config load) and ticks it until ctx is canceled.
// Stop via context cancellation in main() for graceful shutdown.
func (s *DeviceService) Run(ctx context.Context, tick time.Duration) {
	s.log.Infow("device_loop_starting", "tick", tick)
	s.ctl.Start(ctx)
	s.ctl.Run(ctx, tick)
	s.log.Infow("device_loop_stopped")
}
