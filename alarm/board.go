package alarm

import (
	"slices"
	"strings"
	"time"

	"github.com/dnldd/bsmonitor/shared"
)

// SortKey represents the column station board rows are ordered by.
type SortKey int

const (
	ByName SortKey = iota
	ByVoltage
	ByOutage
)

// BoardAlarm represents an active alarm displayed on the station board.
type BoardAlarm struct {
	Type    string
	Raised  string
	Elapsed string
}

// Row represents a station's entry on the station board.
type Row struct {
	StationID string
	Region    shared.Region
	// Voltage is the live voltage, zero when HasVoltage is false.
	Voltage    float64
	HasVoltage bool
	LowVoltage bool
	Severity   shared.Severity
	Alarms     []BoardAlarm
	// Outage is the time elapsed since the power alarm was raised, or NotAvailable.
	Outage string
}

// NewRow builds a station board row from the provided live status. Only alarm types
// in allowed are displayed, in the order given. A missing or non-finite voltage is
// unknown and never flagged as low.
func NewRow(status *shared.StationStatus, allowed []string, now time.Time, loc *time.Location) Row {
	hasVoltage := status.HasVoltage && shared.IsFinite(status.Voltage)
	row := Row{
		StationID:  status.StationID,
		Region:     shared.StationRegion(status.StationID),
		HasVoltage: hasVoltage,
		Severity:   shared.ClassifyVoltage(status.Voltage, hasVoltage),
		Alarms:     make([]BoardAlarm, 0),
		Outage:     shared.NotAvailable,
	}
	if hasVoltage {
		row.Voltage = status.Voltage
		row.LowVoltage = status.Voltage < shared.LowVoltageThreshold
	}

	for idx := range allowed {
		alarmType := allowed[idx]
		ts, ok := status.Alarms[alarmType]
		if !ok || shared.IsUnavailable(ts) {
			continue
		}

		row.Alarms = append(row.Alarms, BoardAlarm{
			Type:    alarmType,
			Raised:  shared.FormatTimestamp(ts, loc),
			Elapsed: shared.FormatElapsed(ts, now, loc),
		})
	}

	if ts, ok := status.Alarms[shared.PowerAlarm]; ok {
		row.Outage = shared.FormatElapsed(ts, now, loc)
	}

	return row
}

// outageDuration returns the parsed outage duration of the row and whether it is known.
func outageDuration(r *Row) (time.Duration, bool) {
	if r.Outage == shared.NotAvailable {
		return 0, false
	}

	d, err := shared.ParseElapsed(r.Outage)
	if err != nil {
		return 0, false
	}

	return d, true
}

// SortRows orders the provided rows in place by the provided key. Rows without a
// known outage or voltage always sort after those with one.
func SortRows(rows []Row, key SortKey, descending bool) {
	direction := 1
	if descending {
		direction = -1
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		switch key {
		case ByVoltage:
			switch {
			case a.HasVoltage && !b.HasVoltage:
				return -1
			case !a.HasVoltage && b.HasVoltage:
				return 1
			case a.Voltage < b.Voltage:
				return -direction
			case a.Voltage > b.Voltage:
				return direction
			default:
				return 0
			}
		case ByOutage:
			aDur, aOk := outageDuration(&a)
			bDur, bOk := outageDuration(&b)
			switch {
			case aOk && !bOk:
				return -1
			case !aOk && bOk:
				return 1
			case !aOk && !bOk:
				return 0
			case aDur < bDur:
				return -direction
			case aDur > bDur:
				return direction
			default:
				return 0
			}
		default:
			return direction * strings.Compare(strings.ToLower(a.StationID), strings.ToLower(b.StationID))
		}
	})
}
