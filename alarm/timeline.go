package alarm

import (
	"slices"
	"time"

	"github.com/dnldd/bsmonitor/shared"
)

// ActiveAlarm represents an alarm whose most recent transition raised it.
type ActiveAlarm struct {
	Type    string
	Since   time.Time
	Elapsed string
}

// Timeline represents the debounced alarm history of a station.
type Timeline struct {
	Changes []shared.AlarmChangeEvent
	Active  []ActiveAlarm
}

// NewTimeline builds a timeline from the provided state transitions, flagging the
// alarm types still active as of now.
func NewTimeline(changes []shared.AlarmChangeEvent, now time.Time) *Timeline {
	latest := make(map[string]shared.AlarmChangeEvent)
	for idx := range changes {
		latest[changes[idx].Type] = changes[idx]
	}

	active := make([]ActiveAlarm, 0, len(latest))
	for alarmType, change := range latest {
		if change.Status != shared.Active {
			continue
		}

		active = append(active, ActiveAlarm{
			Type:    alarmType,
			Since:   change.Timestamp,
			Elapsed: shared.FormatElapsedSince(change.Timestamp, now),
		})
	}

	// Longest running alarms first; map iteration order is not deterministic.
	slices.SortFunc(active, func(a, b ActiveAlarm) int {
		if c := a.Since.Compare(b.Since); c != 0 {
			return c
		}
		switch {
		case a.Type < b.Type:
			return -1
		case a.Type > b.Type:
			return 1
		default:
			return 0
		}
	})

	return &Timeline{
		Changes: changes,
		Active:  active,
	}
}

// Window returns the timeline changes that fall within lookback of now.
func (t *Timeline) Window(lookback time.Duration, now time.Time) []shared.AlarmChangeEvent {
	return shared.FilterWindow(t.Changes, shared.AlarmChangeTime, lookback, now)
}
