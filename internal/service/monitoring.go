package service

import (
	"context"
	"errors"

	"anti_bark/internal/models"
)

// ErrDeviceNotReady is returned until the controller has published its first snapshot.
var ErrDeviceNotReady = errors.New("device not ready")

type StateSource interface {
	Snapshot() models.DeviceState
}

type MonitoringService struct {
	source StateSource
}

func NewMonitoringService(source StateSource) *MonitoringService {
	return &MonitoringService{source: source}
}

// GetState returns the latest published controller snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.DeviceState, error) {
	if err := ctx.Err(); err != nil {
		return models.DeviceState{}, err
	}
	st := s.source.Snapshot()
	if st.UpdatedAt.IsZero() {
		return models.DeviceState{}, ErrDeviceNotReady
	}
	st.UpdatedAt = normalizeToUTC(st.UpdatedAt)
	return st, nil
}

// GetBounds returns the bounds the controller is currently running with.
func (s *MonitoringService) GetBounds(ctx context.Context) (models.Bounds, error) {
	st, err := s.GetState(ctx)
	if err != nil {
		return models.Bounds{}, err
	}
	return st.Bounds, nil
}
