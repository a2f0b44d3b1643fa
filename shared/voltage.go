package shared

import (
	"math"
	"strings"
	"time"
)

const (
	// DefaultMinDisplayVoltage is the lower bound of the default voltage display band.
	DefaultMinDisplayVoltage = 43
	// DefaultMaxDisplayVoltage is the upper bound of the default voltage display band.
	DefaultMaxDisplayVoltage = 55
	// LowVoltageThreshold is the voltage below which a station is flagged as low.
	LowVoltageThreshold = 50
)

// VoltageStatus represents the instrument status reported with a voltage sample.
type VoltageStatus int

const (
	UnknownVoltage VoltageStatus = iota
	NormalVoltage
	WarningVoltage
	CriticalVoltage
)

// String stringifies the provided voltage status.
func (s VoltageStatus) String() string {
	switch s {
	case NormalVoltage:
		return "normal"
	case WarningVoltage:
		return "warning"
	case CriticalVoltage:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the voltage status as its label.
func (s VoltageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseVoltageStatus decodes the provided wire status. Unrecognised values decode as
// UnknownVoltage.
func ParseVoltageStatus(s string) VoltageStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return NormalVoltage
	case "warning":
		return WarningVoltage
	case "critical":
		return CriticalVoltage
	default:
		return UnknownVoltage
	}
}

// VoltageSample represents a single voltage measurement for a station.
type VoltageSample struct {
	Timestamp time.Time
	Value     float64
	Status    VoltageStatus
}

// Point represents a timestamped value of a series.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// MovingAveragePoint represents a moving average value, stamped with the instant of
// the latest point in its averaging window.
type MovingAveragePoint struct {
	Timestamp time.Time
	Value     float64
}

// VoltageBand represents the plausible instrument band for voltage values.
type VoltageBand struct {
	Min float64
	Max float64
}

// DefaultVoltageBand returns the default voltage display band.
func DefaultVoltageBand() VoltageBand {
	return VoltageBand{Min: DefaultMinDisplayVoltage, Max: DefaultMaxDisplayVoltage}
}

// IsFinite returns whether the provided value is neither NaN nor infinite.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Clamp bounds the provided value to the band. NaN, which has no position in the
// band, clamps to the lower bound.
func (b VoltageBand) Clamp(value float64) float64 {
	if math.IsNaN(value) {
		return b.Min
	}

	return math.Min(math.Max(value, b.Min), b.Max)
}

// Contains returns whether the provided value lies within the band.
func (b VoltageBand) Contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

// ClampedPoints returns a chart-facing copy of the provided samples with each value
// clamped to the band. The samples are not modified.
func (b VoltageBand) ClampedPoints(samples []VoltageSample) []Point {
	points := make([]Point, 0, len(samples))
	for idx := range samples {
		points = append(points, Point{
			Timestamp: samples[idx].Timestamp,
			Value:     b.Clamp(samples[idx].Value),
		})
	}

	return points
}

// VoltageSummary represents aggregate statistics of a set of raw voltage samples.
type VoltageSummary struct {
	Count   int
	Min     float64
	Max     float64
	Average float64
}

// SummarizeVoltage computes summary statistics over the finite values of the provided
// raw samples. A sample set without finite values yields a zero summary.
func SummarizeVoltage(samples []VoltageSample) VoltageSummary {
	var summary VoltageSummary
	var sum float64

	for idx := range samples {
		value := samples[idx].Value
		if !IsFinite(value) {
			continue
		}

		if summary.Count == 0 {
			summary.Min = value
			summary.Max = value
		}

		summary.Count++
		sum += value
		summary.Min = math.Min(summary.Min, value)
		summary.Max = math.Max(summary.Max, value)
	}

	if summary.Count > 0 {
		summary.Average = sum / float64(summary.Count)
	}

	return summary
}
