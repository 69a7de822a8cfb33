package model

import "time"

// Sample is one per-device counter reading: cumulative bytes since the
// last counter reset, as reported by the appliance. Values are float64
// because appliance output may carry KiB/MiB/GiB suffixes that convert
// to fractional byte counts.
type Sample struct {
	Time      time.Time
	Name      string // device name in the appliance registry
	BytesUp   float64
	BytesDown float64
}
