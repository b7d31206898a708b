package models

import "time"

// DeviceState is a read-only snapshot of the controller, published after every tick.
type DeviceState struct {
	Mode          string    `json:"mode"`                // FUNCTIONAL | IR_CONFIG
	SubState      string    `json:"sub_state,omitempty"` // MAIN | SET_LOWEST | SET_HIGHEST | FACTORY_RESTORE
	Bounds        Bounds    `json:"bounds"`
	ToneHz        uint32    `json:"tone_hz,omitempty"` // 0 while silent
	Indicator     string    `json:"indicator"`         // OFF | RED | GREEN | BLUE
	MenuIndicator bool      `json:"menu_indicator"`
	HumanTest     bool      `json:"human_test"`
	UpdatedAt     time.Time `json:"updated_at"`
}
