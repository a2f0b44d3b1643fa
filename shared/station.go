package shared

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// stationIDPattern matches station ids of the form NS1234.
	stationIDPattern = regexp.MustCompile(`^NS\d{4}$`)
)

// ValidateStationID asserts the provided station id is of the form NS followed by
// four digits.
func ValidateStationID(id string) error {
	if !stationIDPattern.MatchString(id) {
		return fmt.Errorf("station id %q must be 'NS' followed by 4 digits (e.g. NS1234)", id)
	}

	return nil
}

// Region represents the service region a station belongs to.
type Region int

const (
	OtherRegion Region = iota
	NovosibirskRegion
	TomskRegion
)

// String stringifies the provided region.
func (r Region) String() string {
	switch r {
	case NovosibirskRegion:
		return "novosibirsk"
	case TomskRegion:
		return "tomsk"
	default:
		return "other"
	}
}

// MarshalText encodes the region as its label.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// StationRegion classifies a station by its id prefix.
func StationRegion(id string) Region {
	switch {
	case strings.HasPrefix(id, "NS"):
		return NovosibirskRegion
	case strings.HasPrefix(id, "TO"):
		return TomskRegion
	default:
		return OtherRegion
	}
}

// StationHistory represents the voltage and alarm history reported for a station.
type StationHistory struct {
	StationID   string
	LastUpdated time.Time
	Voltage     []VoltageSample
	Alarms      []AlarmEvent
	// Rejected is the number of history records skipped for malformed fields.
	Rejected int
	// Rejections holds the reason each rejected record was skipped.
	Rejections []string
}

// StationStatus represents the live voltage and alarm state reported for a station.
type StationStatus struct {
	StationID string
	Voltage   float64
	// HasVoltage reports whether the payload carried a finite voltage for the station.
	HasVoltage bool
	// Alarms maps alarm types to their raw wire timestamps. Cleared alarms map to
	// an empty string.
	Alarms map[string]string
}
