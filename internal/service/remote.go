package service

import (
	"context"
	"errors"
	"fmt"

	"anti_bark/internal/device"
	"anti_bark/internal/logger"
)

// ErrKeyRequired is returned when an empty key name is pressed.
var ErrKeyRequired = errors.New("key is required")

type RemoteService struct {
	keys KeySink
	log  *logger.Logger
}

func NewRemoteService(keys KeySink, log *logger.Logger) *RemoteService {
	if log == nil {
		log = logger.Nop()
	}
	return &RemoteService{keys: keys, log: log}
}

// PressKey decodes a key name (OK, LEFT, UP, STAR, HASH, 0-9, ...) and queues it
// for the control loop. Acceptance by the device is reported through the state
// snapshot and the event log, not here.
func (s *RemoteService) PressKey(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return ErrKeyRequired
	}
	key, err := device.ParseKey(name)
	if err != nil {
		return err
	}
	if err := s.keys.Push(key); err != nil {
		s.log.Warnw("remote_key_dropped", "key", key.String(), "err", err)
		return fmt.Errorf("press %s: %w", key, err)
	}
	s.log.Debugw("remote_key_queued", "key", key.String())
	return nil
}
