package fetch

import (
	"testing"
	"time"

	"github.com/dnldd/bsmonitor/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestParseStationHistory(t *testing.T) {
	// Ensure invalid payloads are rejected.
	_, err := ParseStationHistory([]byte(`{"station_info":`), time.UTC)
	assert.Error(t, err)
	_, err = ParseStationHistory([]byte(`[1, 2, 3]`), time.UTC)
	assert.Error(t, err)

	// Ensure a malformed last updated time is rejected.
	_, err = ParseStationHistory([]byte(`{"station_info":{"bs_id":"NS0519","last_updated":"yesterday"}}`), time.UTC)
	assert.Error(t, err)

	// Ensure an empty history parses to empty, non-nil series.
	history, err := ParseStationHistory([]byte(`{"station_info":{"bs_id":"NS0519","last_updated":"N/A"}}`), time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, history.StationID, "NS0519")
	assert.True(t, history.LastUpdated.IsZero())
	assert.NotNil(t, history.Voltage)
	assert.NotNil(t, history.Alarms)
	assert.Equal(t, history.Rejected, 0)

	payload := []byte(`{
		"station_info": {"bs_id": "NS0519", "last_updated": "20250521130000"},
		"voltage_history": [
			{"measured_at": "20250521100000", "value": 48.2, "status": "normal"},
			{"measured_at": "20250521100100.5", "value": "47.9", "status": "warning"},
			{"measured_at": "2025-05-21", "value": 49, "status": "normal"},
			{"measured_at": "20250521100200", "value": true, "status": "normal"},
			{"measured_at": "20250521100300", "value": 51.5},
			{"measured_at": "20250521100400", "value": "NaN", "status": "normal"},
			{"measured_at": "20250521100500", "value": "+Inf", "status": "normal"},
			{"measured_at": "20250521100600", "value": "-Infinity", "status": "normal"},
			{"measured_at": "20250521100700", "value": 1e400, "status": "normal"}
		],
		"alarms_history": [
			{"recorded_at": "20250521100000", "type": "POWER", "status": "active"},
			{"recorded_at": "20250521100500", "type": "POWER", "status": null},
			{"recorded_at": "20250521100600", "type": "DOOR"},
			{"recorded_at": "", "type": "DOOR", "status": "active"}
		]
	}`)

	history, err = ParseStationHistory(payload, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, history.Rejected, 7)

	// Ensure every rejected record carries its reason, non-finite values included.
	wantRejections := []string{
		`voltage record 2: malformed timestamp: "2025-05-21" is shorter than 14 characters`,
		`voltage record 3: value true is not a finite number`,
		`voltage record 5: value "NaN" is not a finite number`,
		`voltage record 6: value "+Inf" is not a finite number`,
		`voltage record 7: value "-Infinity" is not a finite number`,
		`voltage record 8: value 1e400 is not a finite number`,
		`alarm record 3: malformed timestamp: empty string`,
	}
	if diff := cmp.Diff(wantRejections, history.Rejections); diff != "" {
		t.Errorf("unexpected rejections (-want +got):\n%s", diff)
	}
	assert.True(t, history.LastUpdated.Equal(time.Date(2025, time.May, 21, 13, 0, 0, 0, time.UTC)))

	wantVoltage := []shared.VoltageSample{
		{
			Timestamp: time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC),
			Value:     48.2,
			Status:    shared.NormalVoltage,
		},
		{
			Timestamp: time.Date(2025, time.May, 21, 10, 1, 0, 500*int(time.Millisecond), time.UTC),
			Value:     47.9,
			Status:    shared.WarningVoltage,
		},
		{
			Timestamp: time.Date(2025, time.May, 21, 10, 3, 0, 0, time.UTC),
			Value:     51.5,
			Status:    shared.UnknownVoltage,
		},
	}
	if diff := cmp.Diff(wantVoltage, history.Voltage); diff != "" {
		t.Errorf("unexpected voltage history (-want +got):\n%s", diff)
	}

	wantAlarms := []shared.AlarmEvent{
		{
			RecordedAt: time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC),
			Type:       shared.PowerAlarm,
			Status:     shared.Active,
		},
		{
			RecordedAt: time.Date(2025, time.May, 21, 10, 5, 0, 0, time.UTC),
			Type:       shared.PowerAlarm,
			Status:     shared.Cleared,
		},
		{
			RecordedAt: time.Date(2025, time.May, 21, 10, 6, 0, 0, time.UTC),
			Type:       shared.DoorAlarm,
			Status:     shared.Cleared,
		},
	}
	if diff := cmp.Diff(wantAlarms, history.Alarms); diff != "" {
		t.Errorf("unexpected alarm history (-want +got):\n%s", diff)
	}
}

func TestParseStationStatus(t *testing.T) {
	// Ensure invalid payloads are rejected.
	_, err := ParseStationStatus([]byte(`[{"voltage":`), "NS0519")
	assert.Error(t, err)
	_, err = ParseStationStatus([]byte(`{"voltage":{"NS0519":48}}`), "NS0519")
	assert.Error(t, err)

	payload := []byte(`[
		{"voltage": {"NS0519": 48.7, "NS0520": "53.1"}},
		{"alarms": {"POWER": "20250521110411", "DOOR": null}}
	]`)

	status, err := ParseStationStatus(payload, "NS0519")
	assert.NoError(t, err)
	want := &shared.StationStatus{
		StationID:  "NS0519",
		Voltage:    48.7,
		HasVoltage: true,
		Alarms: map[string]string{
			shared.PowerAlarm: "20250521110411",
			shared.DoorAlarm:  "",
		},
	}
	if diff := cmp.Diff(want, status); diff != "" {
		t.Errorf("unexpected status (-want +got):\n%s", diff)
	}

	// Ensure numeric string voltages are decoded.
	status, err = ParseStationStatus(payload, "NS0520")
	assert.NoError(t, err)
	assert.Equal(t, status.Voltage, 53.1)

	// Ensure a station missing from the voltage map has no known voltage.
	status, err = ParseStationStatus(payload, "NS0999")
	assert.NoError(t, err)
	assert.Equal(t, status.Voltage, float64(0))
	assert.False(t, status.HasVoltage)
	assert.Equal(t, len(status.Alarms), 2)

	// Ensure non-finite live voltages are not reported.
	nonFinite := []byte(`[{"voltage": {"NS0519": "NaN", "NS0520": "-Inf", "NS0521": 1e400}}]`)
	for _, station := range []string{"NS0519", "NS0520", "NS0521"} {
		status, err = ParseStationStatus(nonFinite, station)
		assert.NoError(t, err)
		assert.False(t, status.HasVoltage)
		assert.Equal(t, status.Voltage, float64(0))
	}

	// Ensure a payload without alarms yields an empty alarm set.
	status, err = ParseStationStatus([]byte(`[{"voltage": {"NS0519": 49}}]`), "NS0519")
	assert.NoError(t, err)
	assert.NotNil(t, status.Alarms)
	assert.Equal(t, len(status.Alarms), 0)
}

func TestParseStationTemperatures(t *testing.T) {
	// Ensure invalid payloads are rejected.
	_, err := ParseStationTemperatures([]byte(`[[{"NS0519":`))
	assert.Error(t, err)
	_, err = ParseStationTemperatures([]byte(`{"NS0519": {}}`))
	assert.Error(t, err)

	// Ensure an empty payload yields an empty, non-nil set.
	temps, err := ParseStationTemperatures([]byte(`[]`))
	assert.NoError(t, err)
	assert.NotNil(t, temps)
	assert.Equal(t, len(temps), 0)

	payload := []byte(`[[
		{"NS0519": {"BBU": [{"bbu1": 58.5}, {"bbu2": "61"}], "RRU": [{"rru1": 77.2}, {"rru2": "NaN"}]}},
		null,
		{"NS0520": {"BBU": [], "RRU": [{"rru1": "Inf"}]}},
		{"TO0101": {"BBU": [{"bbu1": 80}]}}
	]]`)

	temps, err = ParseStationTemperatures(payload)
	assert.NoError(t, err)

	temp := func(v float64) *float64 { return &v }
	want := []shared.StationTemperature{
		{StationID: "NS0519", MaxBBU: temp(61), MaxRRU: temp(77.2)},
		{StationID: "NS0520"},
		{StationID: "TO0101", MaxBBU: temp(80)},
	}
	if diff := cmp.Diff(want, temps); diff != "" {
		t.Errorf("unexpected temperatures (-want +got):\n%s", diff)
	}
}
