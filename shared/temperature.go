package shared

import (
	"fmt"
	"strings"
)

// TemperatureUnit represents a station unit reporting temperatures.
type TemperatureUnit int

const (
	// BBU is the baseband unit.
	BBU TemperatureUnit = iota
	// RRU is the remote radio unit.
	RRU
)

// String stringifies the provided temperature unit.
func (u TemperatureUnit) String() string {
	switch u {
	case BBU:
		return "BBU"
	case RRU:
		return "RRU"
	default:
		return "unknown"
	}
}

// ParseTemperatureUnit decodes the provided temperature unit label.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BBU":
		return BBU, nil
	case "RRU":
		return RRU, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit provided: %s", s)
	}
}

// StationTemperature represents the hottest readings of a station's units. A nil
// maximum means the unit reported no readings.
type StationTemperature struct {
	StationID string
	MaxBBU    *float64
	MaxRRU    *float64
}

// Max returns the maximum temperature of the provided unit.
func (st *StationTemperature) Max(unit TemperatureUnit) *float64 {
	switch unit {
	case RRU:
		return st.MaxRRU
	default:
		return st.MaxBBU
	}
}

// MaxTemperature returns the highest finite reading of the provided set, or nil when
// there is none.
func MaxTemperature(readings []float64) *float64 {
	var hottest *float64
	for idx := range readings {
		reading := readings[idx]
		if !IsFinite(reading) {
			continue
		}

		if hottest == nil || reading > *hottest {
			hottest = &reading
		}
	}

	return hottest
}
