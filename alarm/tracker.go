package alarm

import (
	"slices"

	"github.com/dnldd/bsmonitor/shared"
)

// Recognizer reports whether an alarm type should be tracked.
type Recognizer func(alarmType string) bool

// AnyType recognizes every non-empty alarm type.
func AnyType(alarmType string) bool {
	return alarmType != ""
}

// AllowedTypes returns a recognizer restricted to the provided alarm types.
func AllowedTypes(types ...string) Recognizer {
	allowed := make(map[string]struct{}, len(types))
	for idx := range types {
		allowed[types[idx]] = struct{}{}
	}

	return func(alarmType string) bool {
		_, ok := allowed[alarmType]
		return ok
	}
}

// TrackStateChanges collapses the provided alarm history into state transitions.
// Events are ordered by the time they were recorded and, per alarm type, only those
// whose status differs from the previously observed status are kept. The first event
// seen for a type is always a transition. A nil recognizer tracks every non-empty type.
func TrackStateChanges(events []shared.AlarmEvent, recognize Recognizer) []shared.AlarmChangeEvent {
	if recognize == nil {
		recognize = AnyType
	}

	ordered := make([]shared.AlarmEvent, 0, len(events))
	for idx := range events {
		if recognize(events[idx].Type) {
			ordered = append(ordered, events[idx])
		}
	}

	slices.SortStableFunc(ordered, func(a, b shared.AlarmEvent) int {
		return a.RecordedAt.Compare(b.RecordedAt)
	})

	changes := make([]shared.AlarmChangeEvent, 0, len(ordered))
	lastStatus := make(map[string]shared.AlarmStatus)
	for idx := range ordered {
		event := ordered[idx]

		last, seen := lastStatus[event.Type]
		if seen && last == event.Status {
			continue
		}

		lastStatus[event.Type] = event.Status
		changes = append(changes, shared.AlarmChangeEvent{
			Timestamp: event.RecordedAt,
			Type:      event.Type,
			Status:    event.Status,
		})
	}

	return changes
}
