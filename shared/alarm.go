package shared

import (
	"time"
)

const (
	PowerAlarm     = "POWER"
	RectifierAlarm = "RECTIFIER"
	DoorAlarm      = "DOOR"
	TempHighAlarm  = "TEMP_HIGH_"
	TempLowAlarm   = "TEMP_LOW"
	SecOffAlarm    = "SECOFF"
	FireAlarm      = "FIRE"
)

// DefaultAlarmTypes returns the alarm types tracked on the station board, in display order.
func DefaultAlarmTypes() []string {
	return []string{PowerAlarm, RectifierAlarm, DoorAlarm, TempHighAlarm, TempLowAlarm,
		SecOffAlarm, FireAlarm}
}

// AlarmStatus represents the state of an alarm.
type AlarmStatus int

const (
	Cleared AlarmStatus = iota
	Active
)

// String stringifies the provided alarm status.
func (s AlarmStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// MarshalText encodes the alarm status as its label.
func (s AlarmStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AlarmEvent represents a raw alarm report for a station.
type AlarmEvent struct {
	RecordedAt time.Time
	Type       string
	Status     AlarmStatus
}

// AlarmChangeEvent represents an alarm state transition.
type AlarmChangeEvent struct {
	Timestamp time.Time
	Type      string
	Status    AlarmStatus
}
