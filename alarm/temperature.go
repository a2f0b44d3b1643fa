package alarm

import (
	"slices"

	"github.com/dnldd/bsmonitor/shared"
)

// TemperatureRow represents a station's entry on the temperature board.
type TemperatureRow struct {
	StationID string
	Region    shared.Region
	// MaxBBU and MaxRRU are nil when the unit reported no readings.
	MaxBBU      *float64
	MaxRRU      *float64
	BBUSeverity shared.Severity
	RRUSeverity shared.Severity
}

// NewTemperatureRow builds a temperature board row from the provided readings.
func NewTemperatureRow(temp *shared.StationTemperature) TemperatureRow {
	return TemperatureRow{
		StationID:   temp.StationID,
		Region:      shared.StationRegion(temp.StationID),
		MaxBBU:      temp.MaxBBU,
		MaxRRU:      temp.MaxRRU,
		BBUSeverity: shared.ClassifyTemperature(temp.MaxBBU),
		RRUSeverity: shared.ClassifyTemperature(temp.MaxRRU),
	}
}

// unitMax returns the maximum temperature of the provided unit.
func (r *TemperatureRow) unitMax(unit shared.TemperatureUnit) *float64 {
	if unit == shared.RRU {
		return r.MaxRRU
	}

	return r.MaxBBU
}

// SortTemperatureRows orders the provided rows in place by the maximum temperature of
// the provided unit. Rows without readings for the unit always sort last.
func SortTemperatureRows(rows []TemperatureRow, unit shared.TemperatureUnit, descending bool) {
	direction := 1
	if descending {
		direction = -1
	}

	slices.SortStableFunc(rows, func(a, b TemperatureRow) int {
		aTemp := a.unitMax(unit)
		bTemp := b.unitMax(unit)
		switch {
		case aTemp != nil && bTemp == nil:
			return -1
		case aTemp == nil && bTemp != nil:
			return 1
		case aTemp == nil && bTemp == nil:
			return 0
		case *aTemp < *bTemp:
			return -direction
		case *aTemp > *bTemp:
			return direction
		default:
			return 0
		}
	})
}
