package shared

import (
	"time"
)

// Trend represents the direction of a candle.
type Trend int

const (
	Steady Trend = iota
	Rising
	Falling
)

// String stringifies the provided trend.
func (t Trend) String() string {
	switch t {
	case Steady:
		return "steady"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// MarshalText encodes the trend as its label.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Candle represents an open/high/low/close summary of voltage values over a bucket.
type Candle struct {
	BucketStart time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
}

// FetchTrend returns the provided candle's trend.
func (c *Candle) FetchTrend() Trend {
	delta := c.Close - c.Open
	switch {
	case delta < 0:
		return Falling
	case delta > 0:
		return Rising
	default:
		return Steady
	}
}

// Range returns the spread between the candle's high and low.
func (c *Candle) Range() float64 {
	return c.High - c.Low
}

// NewCandle builds a candle from the provided bucket values, which must be in
// chronological order and non-empty.
func NewCandle(bucketStart time.Time, values []float64) Candle {
	candle := Candle{
		BucketStart: bucketStart,
		Open:        values[0],
		High:        values[0],
		Low:         values[0],
		Close:       values[len(values)-1],
	}

	for idx := range values[1:] {
		value := values[idx+1]
		if value > candle.High {
			candle.High = value
		}
		if value < candle.Low {
			candle.Low = value
		}
	}

	return candle
}
