package alarm

import (
	"testing"
	"time"

	"github.com/dnldd/bsmonitor/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestTrackStateChanges(t *testing.T) {
	t1 := time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)
	t4 := t1.Add(3 * time.Minute)

	// Ensure an empty history yields no transitions.
	changes := TrackStateChanges(nil, nil)
	assert.NotNil(t, changes)
	assert.Equal(t, len(changes), 0)

	// Ensure repeated statuses are collapsed.
	events := []shared.AlarmEvent{
		{RecordedAt: t1, Type: shared.PowerAlarm, Status: shared.Active},
		{RecordedAt: t2, Type: shared.PowerAlarm, Status: shared.Active},
		{RecordedAt: t3, Type: shared.PowerAlarm, Status: shared.Cleared},
	}
	changes = TrackStateChanges(events, nil)
	want := []shared.AlarmChangeEvent{
		{Timestamp: t1, Type: shared.PowerAlarm, Status: shared.Active},
		{Timestamp: t3, Type: shared.PowerAlarm, Status: shared.Cleared},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("unexpected transitions (-want +got):\n%s", diff)
	}

	// Ensure the first event of a type is a transition even when cleared.
	changes = TrackStateChanges([]shared.AlarmEvent{
		{RecordedAt: t1, Type: shared.DoorAlarm, Status: shared.Cleared},
	}, nil)
	assert.Equal(t, len(changes), 1)
	assert.Equal(t, changes[0].Status, shared.Cleared)

	// Ensure types are tracked independently and events are ordered by time.
	events = []shared.AlarmEvent{
		{RecordedAt: t4, Type: shared.DoorAlarm, Status: shared.Cleared},
		{RecordedAt: t2, Type: shared.PowerAlarm, Status: shared.Active},
		{RecordedAt: t1, Type: shared.DoorAlarm, Status: shared.Active},
		{RecordedAt: t3, Type: shared.PowerAlarm, Status: shared.Active},
		{RecordedAt: t3, Type: shared.DoorAlarm, Status: shared.Active},
	}
	changes = TrackStateChanges(events, nil)
	want = []shared.AlarmChangeEvent{
		{Timestamp: t1, Type: shared.DoorAlarm, Status: shared.Active},
		{Timestamp: t2, Type: shared.PowerAlarm, Status: shared.Active},
		{Timestamp: t4, Type: shared.DoorAlarm, Status: shared.Cleared},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("unexpected transitions (-want +got):\n%s", diff)
	}

	// Ensure the provided history is not reordered.
	assert.True(t, events[0].RecordedAt.Equal(t4))

	// Ensure unrecognized types are ignored.
	events = []shared.AlarmEvent{
		{RecordedAt: t1, Type: shared.PowerAlarm, Status: shared.Active},
		{RecordedAt: t2, Type: "GENERATOR", Status: shared.Active},
		{RecordedAt: t3, Type: "", Status: shared.Active},
	}
	changes = TrackStateChanges(events, AllowedTypes(shared.DefaultAlarmTypes()...))
	assert.Equal(t, len(changes), 1)
	assert.Equal(t, changes[0].Type, shared.PowerAlarm)

	changes = TrackStateChanges(events, AnyType)
	assert.Equal(t, len(changes), 2)
}

func TestTrackStateChangesAlternates(t *testing.T) {
	start := time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC)
	statuses := []shared.AlarmStatus{
		shared.Cleared, shared.Active, shared.Active, shared.Cleared, shared.Cleared,
		shared.Active, shared.Cleared, shared.Active, shared.Active, shared.Active,
	}

	events := make([]shared.AlarmEvent, 0, len(statuses))
	for idx, status := range statuses {
		events = append(events, shared.AlarmEvent{
			RecordedAt: start.Add(time.Duration(idx) * time.Minute),
			Type:       shared.RectifierAlarm,
			Status:     status,
		})
	}

	// Ensure consecutive transitions of a type always alternate status.
	changes := TrackStateChanges(events, nil)
	assert.Equal(t, len(changes), 6)
	for idx := 1; idx < len(changes); idx++ {
		assert.True(t, changes[idx].Status != changes[idx-1].Status)
	}
}
