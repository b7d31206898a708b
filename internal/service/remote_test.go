package service

import (
	"context"
	"errors"
	"testing"

	"anti_bark/internal/device"
)

// keySinkStub records pushed keys and optionally fails.
type keySinkStub struct {
	pushed []device.Key
	err    error
}

func (k *keySinkStub) Push(key device.Key) error {
	if k.err != nil {
		return k.err
	}
	k.pushed = append(k.pushed, key)
	return nil
}

func TestRemoteService_PressKey(t *testing.T) {
	t.Parallel()

	errFull := errors.New("queue full")

	tests := []struct {
		name      string
		key       string
		sinkErr   error
		wantKey   device.Key
		wantErrIs error
		wantErr   bool
	}{
		{name: "navigation key", key: "LEFT", wantKey: device.KeyLeft},
		{name: "lower case", key: "ok", wantKey: device.KeyOK},
		{name: "digit", key: "7", wantKey: device.KeyDigit7},
		{name: "hash alias", key: "#", wantKey: device.KeyHash},
		{name: "empty", key: "", wantErrIs: ErrKeyRequired},
		{name: "unknown", key: "POWER", wantErrIs: device.ErrUnknownKey},
		{name: "sink full", key: "UP", sinkErr: errFull, wantErrIs: errFull},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sink := &keySinkStub{err: tt.sinkErr}
			svc := NewRemoteService(sink, nil)

			err := svc.PressKey(context.Background(), tt.key)
			if tt.wantErrIs != nil {
				if !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}
				if len(sink.pushed) != 0 {
					t.Fatalf("no key should be queued on error, got %v", sink.pushed)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sink.pushed) != 1 || sink.pushed[0] != tt.wantKey {
				t.Fatalf("pushed = %v; want [%v]", sink.pushed, tt.wantKey)
			}
		})
	}
}

func TestRemoteService_PressKey_CanceledContext(t *testing.T) {
	t.Parallel()

	sink := &keySinkStub{}
	svc := NewRemoteService(sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.PressKey(ctx, "OK"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.pushed) != 0 {
		t.Fatalf("no key should be queued after cancellation")
	}
}
