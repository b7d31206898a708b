package hardware

import (
	"sync"

	"anti_bark/internal/device"
	"anti_bark/internal/logger"
)

// SimOutputs stands in for the transducer and LEDs on a bench host.
// Every change is logged and the latest levels can be read back.
type SimOutputs struct {
	mu        sync.RWMutex
	log       *logger.Logger
	toneHz    uint32
	indicator device.Color
	menu      bool
}

func NewSimOutputs(log *logger.Logger) *SimOutputs {
	if log == nil {
		log = logger.Nop()
	}
	return &SimOutputs{log: log}
}

func (o *SimOutputs) Tone(hz uint32) {
	o.mu.Lock()
	o.toneHz = hz
	o.mu.Unlock()
	o.log.Debugw("output_tone", "hz", hz)
}

func (o *SimOutputs) Quiet() {
	o.mu.Lock()
	o.toneHz = 0
	o.mu.Unlock()
	o.log.Debugw("output_quiet")
}

func (o *SimOutputs) SetIndicator(c device.Color) {
	o.mu.Lock()
	o.indicator = c
	o.mu.Unlock()
	o.log.Debugw("output_indicator", "color", c.String())
}

func (o *SimOutputs) SetMenuIndicator(on bool) {
	o.mu.Lock()
	o.menu = on
	o.mu.Unlock()
	o.log.Debugw("output_menu_indicator", "on", on)
}

// Levels reports the current tone frequency (0 when silent), indicator colour and menu indicator.
func (o *SimOutputs) Levels() (toneHz uint32, indicator device.Color, menu bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.toneHz, o.indicator, o.menu
}
