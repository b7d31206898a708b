package models

// Bounds is the persisted parameter set of the device.
type Bounds struct {
	LowestKHz       uint32 `json:"lowest_khz"`
	HighestKHz      uint32 `json:"highest_khz"`
	IntervalSeconds uint32 `json:"interval_s"` // ceiling of the random tone/silence delay
}
