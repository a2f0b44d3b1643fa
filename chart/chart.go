package chart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dnldd/bsmonitor/alarm"
	"github.com/dnldd/bsmonitor/indicator"
	"github.com/dnldd/bsmonitor/shared"
)

const (
	// DefaultLookbackDays is the default number of days of history charted.
	DefaultLookbackDays = 7
	// DefaultMovingAveragePeriod is the default moving average period.
	DefaultMovingAveragePeriod = 20
)

// Mode represents how the voltage series is charted.
type Mode int

const (
	LineMode Mode = iota
	CandleMode
)

// String stringifies the provided chart mode.
func (m Mode) String() string {
	switch m {
	case LineMode:
		return "line"
	case CandleMode:
		return "candle"
	default:
		return "unknown"
	}
}

// MarshalText encodes the chart mode as its label.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode decodes the provided chart mode label.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return LineMode, nil
	case "candle":
		return CandleMode, nil
	default:
		return 0, fmt.Errorf("unknown chart mode provided: %s", s)
	}
}

// Config represents the chart configuration.
type Config struct {
	// Mode is the voltage series chart mode.
	Mode Mode
	// Timeframe is the candle interval, used in candle mode.
	Timeframe shared.Timeframe
	// Alignment is the candle bucket alignment, used in candle mode.
	Alignment shared.Alignment
	// Lookback is the charted history window.
	Lookback time.Duration
	// ShowMovingAverage is the moving average overlay flag.
	ShowMovingAverage bool
	// MovingAveragePeriod is the number of raw points averaged by the overlay.
	MovingAveragePeriod int
	// Band is the voltage display band chart values are clamped to.
	Band shared.VoltageBand
	// AlarmTypes restricts the charted alarm types. Nil charts every typed alarm.
	AlarmTypes []string
	// Location is the time zone candle buckets are aligned in.
	Location *time.Location
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.Mode != LineMode && cfg.Mode != CandleMode {
		errs = errors.Join(errs, fmt.Errorf("unknown chart mode: %d", cfg.Mode))
	}
	if cfg.Mode == CandleMode && cfg.Timeframe.Minutes() == 0 {
		errs = errors.Join(errs, fmt.Errorf("unknown candle timeframe: %d", cfg.Timeframe))
	}
	if cfg.Lookback <= 0 {
		errs = errors.Join(errs, fmt.Errorf("lookback must be positive, got %s", cfg.Lookback))
	}
	if cfg.ShowMovingAverage && cfg.MovingAveragePeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("moving average period must be positive, got %d",
			cfg.MovingAveragePeriod))
	}
	if cfg.Band.Min >= cfg.Band.Max {
		errs = errors.Join(errs, fmt.Errorf("voltage band minimum (%.2f) must be below its maximum (%.2f)",
			cfg.Band.Min, cfg.Band.Max))
	}

	return errs
}

// Marker represents an alarm transition plotted on the chart.
type Marker struct {
	Timestamp time.Time
	Type      string
	Status    shared.AlarmStatus
	Label     string
}

// Chart represents the chart-ready series of a station.
type Chart struct {
	StationID string
	Mode      Mode
	Timeframe shared.Timeframe
	// Line holds the clamped voltage series in line mode.
	Line []shared.Point
	// Candles holds the voltage candles in candle mode.
	Candles []shared.Candle
	// Trends holds the trend of each candle.
	Trends        []shared.Trend
	MovingAverage []shared.MovingAveragePoint
	Markers       []Marker
	// Changes holds the alarm transitions of the full history, unwindowed.
	Changes []shared.AlarmChangeEvent `json:"-"`
	// WidestRange is the widest high-low range of the charted candles.
	WidestRange float64
	// Summary holds statistics over the raw, unclamped voltage history.
	Summary shared.VoltageSummary
	// Clamped is the number of charted values adjusted to the display band.
	Clamped int
}

// markerLabel returns the display label of an alarm transition.
func markerLabel(change shared.AlarmChangeEvent) string {
	switch change.Status {
	case shared.Active:
		return "alarm raised: " + change.Type
	default:
		return "alarm cleared: " + change.Type
	}
}

// Build derives the chart-ready series of the provided station history as of now.
func Build(cfg *Config, history *shared.StationHistory, now time.Time) (*Chart, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid chart config: %w", err)
	}

	chart := &Chart{
		StationID:     history.StationID,
		Mode:          cfg.Mode,
		Timeframe:     cfg.Timeframe,
		Line:          make([]shared.Point, 0),
		Candles:       make([]shared.Candle, 0),
		Trends:        make([]shared.Trend, 0),
		MovingAverage: make([]shared.MovingAveragePoint, 0),
		Summary:       shared.SummarizeVoltage(history.Voltage),
	}

	samples := shared.FilterWindow(history.Voltage, shared.SampleTime, cfg.Lookback, now)
	slices.SortStableFunc(samples, func(a, b shared.VoltageSample) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	for idx := range samples {
		if !cfg.Band.Contains(samples[idx].Value) {
			chart.Clamped++
		}
	}

	points := cfg.Band.ClampedPoints(samples)

	switch cfg.Mode {
	case CandleMode:
		candles, err := indicator.AggregateCandles(points, cfg.Timeframe.Minutes(), cfg.Alignment, cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("aggregating %s candles: %w", cfg.Timeframe.String(), err)
		}

		chart.Candles = candles
		for idx := range candles {
			chart.Trends = append(chart.Trends, candles[idx].FetchTrend())
			chart.WidestRange = max(chart.WidestRange, candles[idx].Range())
		}
	default:
		chart.Line = points
	}

	if cfg.ShowMovingAverage {
		averages, err := indicator.MovingAverage(points, cfg.MovingAveragePeriod)
		if err != nil {
			return nil, fmt.Errorf("calculating moving average: %w", err)
		}

		chart.MovingAverage = averages
	}

	// Transitions are tracked over the full history so an alarm raised before the
	// window does not reappear as a fresh transition inside it.
	var recognize alarm.Recognizer
	if cfg.AlarmTypes != nil {
		recognize = alarm.AllowedTypes(cfg.AlarmTypes...)
	}

	chart.Changes = alarm.TrackStateChanges(history.Alarms, recognize)
	windowed := shared.FilterWindow(chart.Changes, shared.AlarmChangeTime, cfg.Lookback, now)
	chart.Markers = make([]Marker, 0, len(windowed))
	for idx := range windowed {
		chart.Markers = append(chart.Markers, Marker{
			Timestamp: windowed[idx].Timestamp,
			Type:      windowed[idx].Type,
			Status:    windowed[idx].Status,
			Label:     markerLabel(windowed[idx]),
		})
	}

	return chart, nil
}
