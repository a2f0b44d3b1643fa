package shared

import (
	"fmt"
	"strings"
)

// Timeframe represents the candle aggregation interval.
type Timeframe int

const (
	FiveMinute Timeframe = iota
	FifteenMinute
	ThirtyMinute
	OneHour
	ThreeHour
	SixHour
	TwelveHour
	OneDay
)

// Timeframes returns all supported timeframes in ascending order.
func Timeframes() []Timeframe {
	return []Timeframe{FiveMinute, FifteenMinute, ThirtyMinute, OneHour, ThreeHour,
		SixHour, TwelveHour, OneDay}
}

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case FiveMinute:
		return "5M"
	case FifteenMinute:
		return "15M"
	case ThirtyMinute:
		return "30M"
	case OneHour:
		return "1H"
	case ThreeHour:
		return "3H"
	case SixHour:
		return "6H"
	case TwelveHour:
		return "12H"
	case OneDay:
		return "1D"
	default:
		return "unknown"
	}
}

// MarshalText encodes the timeframe as its label.
func (t Timeframe) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Minutes returns the interval length of the timeframe in minutes.
func (t Timeframe) Minutes() int {
	switch t {
	case FiveMinute:
		return 5
	case FifteenMinute:
		return 15
	case ThirtyMinute:
		return 30
	case OneHour:
		return 60
	case ThreeHour:
		return 180
	case SixHour:
		return 360
	case TwelveHour:
		return 720
	case OneDay:
		return 1440
	default:
		return 0
	}
}

// ParseTimeframe decodes the provided timeframe label (e.g. "15M", "1h").
func ParseTimeframe(s string) (Timeframe, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	for _, tf := range Timeframes() {
		if tf.String() == label {
			return tf, nil
		}
	}

	return 0, fmt.Errorf("unknown timeframe provided: %s", s)
}

// Alignment represents how candle buckets are anchored in time.
type Alignment int

const (
	// SessionAlignment anchors buckets on the first sample, flooring its
	// minute-of-hour to the interval.
	SessionAlignment Alignment = iota
	// GridAlignment anchors buckets on a fixed grid measured from local midnight.
	GridAlignment
)

// String stringifies the provided alignment.
func (a Alignment) String() string {
	switch a {
	case SessionAlignment:
		return "session"
	case GridAlignment:
		return "grid"
	default:
		return "unknown"
	}
}

// MarshalText encodes the alignment as its label.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAlignment decodes the provided alignment label.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "session":
		return SessionAlignment, nil
	case "grid":
		return GridAlignment, nil
	default:
		return 0, fmt.Errorf("unknown alignment provided: %s", s)
	}
}
