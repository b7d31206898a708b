package service

import (
	"context"
	"time"

	"anti_bark/internal/models"
	"anti_bark/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Remote is the virtual IR remote of the bench harness.
type Remote interface {
	PressKey(ctx context.Context, key string) error
}

// Monitoring exposes the read-only device snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.DeviceState, error)
	GetBounds(ctx context.Context) (models.Bounds, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Device runs the control loop until ctx is canceled.
type Device interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Remote
	Monitoring
	EventLog
	Device
	Authorization
}

// NewService wires the repository layer and the device controller into concrete services.
func NewService(repos *repository.Repository, dev DeviceDeps, auth AuthConfig) *Service {
	return &Service{
		Remote:        NewRemoteService(dev.Keys, dev.Log),
		Monitoring:    NewMonitoringService(dev.Controller),
		EventLog:      NewEventLogService(repos.EventRepo),
		Device:        NewDeviceService(dev.Controller, dev.Log),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
