package hardware

import (
	"errors"

	"anti_bark/internal/device"
)

const defaultKeyQueueSize = 16

// ErrQueueFull is returned by Push when the receiver has not drained earlier keys.
var ErrQueueFull = errors.New("ir key queue is full")

// KeyQueue is the simulated IR receiver. Producers push decoded keys from any
// goroutine; the control loop drains one key per tick through Poll.
type KeyQueue struct {
	ch chan device.Key
}

func NewKeyQueue(size int) *KeyQueue {
	if size <= 0 {
		size = defaultKeyQueueSize
	}
	return &KeyQueue{ch: make(chan device.Key, size)}
}

// Push enqueues key without blocking.
func (q *KeyQueue) Push(key device.Key) error {
	select {
	case q.ch <- key:
		return nil
	default:
		return ErrQueueFull
	}
}

// Poll returns the oldest pending key, if any.
func (q *KeyQueue) Poll() (device.Key, bool) {
	select {
	case k := <-q.ch:
		return k, true
	default:
		return 0, false
	}
}

func (q *KeyQueue) Len() int { return len(q.ch) }
