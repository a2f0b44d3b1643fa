package alarm

import (
	"testing"

	"github.com/dnldd/bsmonitor/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestNewTemperatureRow(t *testing.T) {
	bbu := 61.0
	rru := 77.2

	row := NewTemperatureRow(&shared.StationTemperature{StationID: "NS0519", MaxBBU: &bbu, MaxRRU: &rru})
	assert.Equal(t, row.Region, shared.NovosibirskRegion)
	assert.Equal(t, row.BBUSeverity, shared.WarningSeverity)
	assert.Equal(t, row.RRUSeverity, shared.CriticalSeverity)

	// Ensure a unit without readings has an unknown severity.
	row = NewTemperatureRow(&shared.StationTemperature{StationID: "TO0101", MaxRRU: &bbu})
	assert.Equal(t, row.Region, shared.TomskRegion)
	assert.Nil(t, row.MaxBBU)
	assert.Equal(t, row.BBUSeverity, shared.UnknownSeverity)
	assert.Equal(t, row.RRUSeverity, shared.WarningSeverity)
}

func TestSortTemperatureRows(t *testing.T) {
	temp := func(v float64) *float64 { return &v }

	rows := func() []TemperatureRow {
		return []TemperatureRow{
			{StationID: "NS0001", MaxBBU: temp(58), MaxRRU: temp(71)},
			{StationID: "NS0002", MaxBBU: nil, MaxRRU: temp(44)},
			{StationID: "NS0003", MaxBBU: temp(76), MaxRRU: nil},
			{StationID: "NS0004", MaxBBU: temp(40.5), MaxRRU: temp(66)},
			{StationID: "NS0005", MaxBBU: nil, MaxRRU: nil},
		}
	}

	ids := func(rows []TemperatureRow) []string {
		out := make([]string, 0, len(rows))
		for idx := range rows {
			out = append(out, rows[idx].StationID)
		}
		return out
	}

	tests := []struct {
		name       string
		unit       shared.TemperatureUnit
		descending bool
		want       []string
	}{
		{
			name:       "bbu descending",
			unit:       shared.BBU,
			descending: true,
			want:       []string{"NS0003", "NS0001", "NS0004", "NS0002", "NS0005"},
		},
		{
			name: "bbu ascending",
			unit: shared.BBU,
			want: []string{"NS0004", "NS0001", "NS0003", "NS0002", "NS0005"},
		},
		{
			name:       "rru descending",
			unit:       shared.RRU,
			descending: true,
			want:       []string{"NS0001", "NS0004", "NS0002", "NS0003", "NS0005"},
		},
		{
			name: "rru ascending",
			unit: shared.RRU,
			want: []string{"NS0002", "NS0004", "NS0001", "NS0003", "NS0005"},
		},
	}

	for _, test := range tests {
		sorted := rows()
		SortTemperatureRows(sorted, test.unit, test.descending)

		if diff := cmp.Diff(test.want, ids(sorted)); diff != "" {
			t.Errorf("%s: unexpected order (-want +got):\n%s", test.name, diff)
		}
	}
}
