package fetch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dnldd/bsmonitor/shared"
	"github.com/tidwall/gjson"
)

// parseValue decodes a numeric field that may be transmitted as a number or as a
// numeric string. Non-finite values such as "NaN" or "Inf" are rejected.
func parseValue(res gjson.Result) (float64, bool) {
	var val float64
	switch res.Type {
	case gjson.Number:
		val = res.Float()
	case gjson.String:
		var err error
		val, err = strconv.ParseFloat(res.Str, 64)
		if err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	if !shared.IsFinite(val) {
		return 0, false
	}

	return val, true
}

// parseAlarmStatus decodes an alarm status field. A null or absent status means the
// alarm is cleared, any other value means it is active.
func parseAlarmStatus(res gjson.Result) shared.AlarmStatus {
	if !res.Exists() || res.Type == gjson.Null {
		return shared.Cleared
	}

	return shared.Active
}

// ParseStationHistory parses a station history payload. Voltage and alarm records with
// malformed timestamps or values are skipped and counted as rejected.
func ParseStationHistory(data []byte, loc *time.Location) (*shared.StationHistory, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("station history payload is not valid json")
	}

	b := gjson.ParseBytes(data)
	if !b.IsObject() {
		return nil, fmt.Errorf("station history payload is not a json object")
	}

	info := b.Get("station_info")
	history := &shared.StationHistory{
		StationID: info.Get("bs_id").String(),
	}
	reject := func(format string, args ...any) {
		history.Rejected++
		history.Rejections = append(history.Rejections, fmt.Sprintf(format, args...))
	}

	lastUpdated := info.Get("last_updated").String()
	if !shared.IsUnavailable(lastUpdated) {
		t, err := shared.ParseTimestampTime(lastUpdated, loc)
		if err != nil {
			return nil, fmt.Errorf("parsing last updated time of %s: %w", history.StationID, err)
		}
		history.LastUpdated = t
	}

	voltage := b.Get("voltage_history").Array()
	history.Voltage = make([]shared.VoltageSample, 0, len(voltage))
	for idx := range voltage {
		rec := voltage[idx]

		ts, err := shared.ParseTimestampTime(rec.Get("measured_at").String(), loc)
		if err != nil {
			reject("voltage record %d: %v", idx, err)
			continue
		}

		value, ok := parseValue(rec.Get("value"))
		if !ok {
			reject("voltage record %d: value %s is not a finite number", idx, rec.Get("value").Raw)
			continue
		}

		history.Voltage = append(history.Voltage, shared.VoltageSample{
			Timestamp: ts,
			Value:     value,
			Status:    shared.ParseVoltageStatus(rec.Get("status").String()),
		})
	}

	alarms := b.Get("alarms_history").Array()
	history.Alarms = make([]shared.AlarmEvent, 0, len(alarms))
	for idx := range alarms {
		rec := alarms[idx]

		ts, err := shared.ParseTimestampTime(rec.Get("recorded_at").String(), loc)
		if err != nil {
			reject("alarm record %d: %v", idx, err)
			continue
		}

		history.Alarms = append(history.Alarms, shared.AlarmEvent{
			RecordedAt: ts,
			Type:       rec.Get("type").String(),
			Status:     parseAlarmStatus(rec.Get("status")),
		})
	}

	return history, nil
}

// ParseStationStatus parses a live station status payload of the form
// [{"voltage":{<station>:<value>}},{"alarms":{<type>:<timestamp>|null}}].
func ParseStationStatus(data []byte, station string) (*shared.StationStatus, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("station status payload is not valid json")
	}

	b := gjson.ParseBytes(data)
	if !b.IsArray() {
		return nil, fmt.Errorf("station status payload is not a json array")
	}

	status := &shared.StationStatus{
		StationID: station,
		Alarms:    make(map[string]string),
	}

	// A station missing from the voltage map, or reporting a non-finite value, has
	// no known voltage.
	value, ok := parseValue(b.Get("0.voltage").Get(station))
	if ok {
		status.Voltage = value
		status.HasVoltage = true
	}

	b.Get("1.alarms").ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			status.Alarms[key.String()] = ""
		default:
			status.Alarms[key.String()] = value.String()
		}
		return true
	})

	return status, nil
}

// ParseStationTemperatures parses a temperature payload of the form
// [[{<station>:{"BBU":[{<sensor>:<value>}],"RRU":[{<sensor>:<value>}]}}|null]].
// Null entries are skipped, as are readings that are not finite numbers.
func ParseStationTemperatures(data []byte) ([]shared.StationTemperature, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("temperature payload is not valid json")
	}

	b := gjson.ParseBytes(data)
	if !b.IsArray() {
		return nil, fmt.Errorf("temperature payload is not a json array")
	}

	entries := b.Get("0").Array()
	temps := make([]shared.StationTemperature, 0, len(entries))
	for idx := range entries {
		entry := entries[idx]
		if !entry.IsObject() {
			continue
		}

		entry.ForEach(func(key, units gjson.Result) bool {
			temps = append(temps, shared.StationTemperature{
				StationID: key.String(),
				MaxBBU:    shared.MaxTemperature(parseReadings(units.Get(shared.BBU.String()))),
				MaxRRU:    shared.MaxTemperature(parseReadings(units.Get(shared.RRU.String()))),
			})

			// Each entry keys a single station.
			return false
		})
	}

	return temps, nil
}

// parseReadings collects the first value of each sensor object in the provided set.
func parseReadings(res gjson.Result) []float64 {
	sensors := res.Array()
	readings := make([]float64, 0, len(sensors))
	for idx := range sensors {
		sensors[idx].ForEach(func(_, value gjson.Result) bool {
			if val, ok := parseValue(value); ok {
				readings = append(readings, val)
			}
			return false
		})
	}

	return readings
}
