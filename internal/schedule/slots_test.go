package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaidya/meetingmate/internal/calendar"
)

func loc(t *testing.T) *time.Location {
	t.Helper()
	l, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return l
}

func timedEvent(summary string, start, end time.Time) calendar.Event {
	return calendar.Event{
		Summary: summary,
		Start:   calendar.EventTime{Time: start, Valid: true},
		End:     calendar.EventTime{Time: end, Valid: true},
	}
}

func allDayEvent(summary string, day time.Time) calendar.Event {
	return calendar.Event{
		Summary: summary,
		Start:   calendar.EventTime{Time: day, DateOnly: true, Valid: true},
		End:     calendar.EventTime{Time: day.AddDate(0, 0, 1), DateOnly: true, Valid: true},
	}
}

func TestResolveDay(t *testing.T) {
	l := loc(t)
	now := time.Date(2025, 6, 10, 16, 45, 0, 0, l)

	tests := []struct {
		input     string
		label     string
		wantStart time.Time
	}{
		{input: "today", label: "today", wantStart: time.Date(2025, 6, 10, 0, 0, 0, 0, l)},
		{input: "Tomorrow", label: "tomorrow", wantStart: time.Date(2025, 6, 11, 0, 0, 0, 0, l)},
		{input: "", label: "today", wantStart: time.Date(2025, 6, 10, 0, 0, 0, 0, l)},
		{input: "next week", label: "today", wantStart: time.Date(2025, 6, 10, 0, 0, 0, 0, l)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			day := ResolveDay(now, tt.input)
			assert.Equal(t, tt.label, day.Label)
			assert.True(t, day.Start.Equal(tt.wantStart))
			assert.True(t, day.End.Equal(tt.wantStart.AddDate(0, 0, 1)))
		})
	}
}

func TestFreeSlotsTwoMeetings(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		timedEvent("Standup", time.Date(2025, 6, 10, 9, 0, 0, 0, l), time.Date(2025, 6, 10, 10, 0, 0, 0, l)),
		timedEvent("Review", time.Date(2025, 6, 10, 14, 0, 0, 0, l), time.Date(2025, 6, 10, 15, 0, 0, 0, l)),
	}

	slots := FreeSlots(day, events)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Start.Equal(day.Start))
	assert.True(t, slots[0].End.Equal(events[0].Start.Time))
	assert.True(t, slots[1].Start.Equal(events[0].End.Time))
	assert.True(t, slots[1].End.Equal(events[1].Start.Time))
	assert.True(t, slots[2].Start.Equal(events[1].End.Time))
	assert.True(t, slots[2].End.Equal(day.End))
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	slots := FreeSlots(day, nil)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Start.Equal(day.Start))
	assert.True(t, slots[0].End.Equal(day.End))
}

func TestFreeSlotsFullyBooked(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		timedEvent("Offsite", day.Start, day.End),
	}

	assert.Empty(t, FreeSlots(day, events))
}

func TestFreeSlotsUnsortedInput(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		timedEvent("Review", time.Date(2025, 6, 10, 14, 0, 0, 0, l), time.Date(2025, 6, 10, 15, 0, 0, 0, l)),
		timedEvent("Standup", time.Date(2025, 6, 10, 9, 0, 0, 0, l), time.Date(2025, 6, 10, 10, 0, 0, 0, l)),
	}

	slots := FreeSlots(day, events)
	require.Len(t, slots, 3)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].End.Before(slots[i].Start) || slots[i-1].End.Equal(slots[i].Start),
			"slots must be chronological and non-overlapping")
	}
}

func TestFreeSlotsOverlappingEvents(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	// Second event starts inside the first; the cursor must not move backwards.
	events := []calendar.Event{
		timedEvent("Workshop", time.Date(2025, 6, 10, 9, 0, 0, 0, l), time.Date(2025, 6, 10, 12, 0, 0, 0, l)),
		timedEvent("Sync", time.Date(2025, 6, 10, 10, 0, 0, 0, l), time.Date(2025, 6, 10, 11, 0, 0, 0, l)),
	}

	slots := FreeSlots(day, events)
	require.Len(t, slots, 2)
	assert.True(t, slots[1].Start.Equal(time.Date(2025, 6, 10, 12, 0, 0, 0, l)))
}

func TestFreeSlotsBackToBackEvents(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		timedEvent("A", time.Date(2025, 6, 10, 9, 0, 0, 0, l), time.Date(2025, 6, 10, 10, 0, 0, 0, l)),
		timedEvent("B", time.Date(2025, 6, 10, 10, 0, 0, 0, l), time.Date(2025, 6, 10, 11, 0, 0, 0, l)),
	}

	slots := FreeSlots(day, events)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].End.Equal(events[0].Start.Time))
	assert.True(t, slots[1].Start.Equal(events[1].End.Time))
}

func TestFreeSlotsIgnoresAllDayAndOtherDays(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		allDayEvent("Holiday", day.Start),
		timedEvent("Next week", time.Date(2025, 6, 17, 9, 0, 0, 0, l), time.Date(2025, 6, 17, 10, 0, 0, 0, l)),
		{Summary: "Broken"},
	}

	slots := FreeSlots(day, events)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Start.Equal(day.Start))
	assert.True(t, slots[0].End.Equal(day.End))
}

// The union of slots and busy events must exactly cover the day with no
// overlap: each adjacent boundary pair has to meet exactly.
func TestFreeSlotsPartitionProperty(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	events := []calendar.Event{
		timedEvent("A", time.Date(2025, 6, 10, 7, 30, 0, 0, l), time.Date(2025, 6, 10, 8, 15, 0, 0, l)),
		timedEvent("B", time.Date(2025, 6, 10, 8, 15, 0, 0, l), time.Date(2025, 6, 10, 9, 0, 0, 0, l)),
		timedEvent("C", time.Date(2025, 6, 10, 13, 0, 0, 0, l), time.Date(2025, 6, 10, 13, 30, 0, 0, l)),
		timedEvent("D", time.Date(2025, 6, 10, 22, 0, 0, 0, l), time.Date(2025, 6, 10, 23, 59, 0, 0, l)),
	}

	slots := FreeSlots(day, events)
	require.NotEmpty(t, slots)

	type interval struct {
		start, end time.Time
		free       bool
	}
	var all []interval
	for _, s := range slots {
		all = append(all, interval{s.Start, s.End, true})
	}
	for _, e := range events {
		all = append(all, interval{e.Start.Time, e.End.Time, false})
	}

	// Sort by start and walk the merged timeline.
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].start.Before(all[i].start) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}

	cursor := all[0].start
	for _, iv := range all {
		if iv.start.After(cursor) {
			t.Fatalf("gap in coverage at %v", cursor)
		}
		if iv.end.After(cursor) {
			cursor = iv.end
		}
	}
	assert.False(t, cursor.Before(day.End), "timeline must reach end of day")
}

func TestFormatSlots(t *testing.T) {
	l := loc(t)
	day := ResolveDay(time.Date(2025, 6, 10, 8, 0, 0, 0, l), "today")

	t.Run("no slots", func(t *testing.T) {
		assert.Equal(t, "No free slots today.", FormatSlots(day, nil))
	})

	t.Run("lists slots as 12-hour ranges", func(t *testing.T) {
		slots := []Slot{
			{Start: day.Start, End: time.Date(2025, 6, 10, 9, 0, 0, 0, l)},
			{Start: time.Date(2025, 6, 10, 10, 0, 0, 0, l), End: time.Date(2025, 6, 10, 14, 0, 0, 0, l)},
		}
		got := FormatSlots(day, slots)
		assert.Equal(t, "Free slots today:\n12:00 AM - 09:00 AM\n10:00 AM - 02:00 PM", got)
	})
}
