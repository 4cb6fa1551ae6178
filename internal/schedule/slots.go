package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rvaidya/meetingmate/internal/calendar"
)

// clockFormat renders a local 12-hour clock time.
const clockFormat = "03:04 PM"

// Slot is a half-open interval [Start, End) of free time within a day.
type Slot struct {
	Start time.Time
	End   time.Time
}

// String renders the slot as a local 12-hour time range.
func (s Slot) String() string {
	return fmt.Sprintf("%s - %s", s.Start.Format(clockFormat), s.End.Format(clockFormat))
}

// Day is a target day resolved to its [start, end) bounds in a fixed
// timezone. End is midnight of the following day.
type Day struct {
	Label string
	Start time.Time
	End   time.Time
}

// ResolveDay resolves "today" or "tomorrow" against now. Anything other
// than "tomorrow" is treated as today, matching how users phrase requests.
func ResolveDay(now time.Time, day string) Day {
	label := "today"
	target := now
	if strings.EqualFold(strings.TrimSpace(day), "tomorrow") {
		label = "tomorrow"
		target = now.AddDate(0, 0, 1)
	}

	start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())
	return Day{
		Label: label,
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// FreeSlots computes the free gaps of a day given the upcoming events.
//
// Only events with a precise date-time start inside [day.Start, day.End]
// participate; all-day events and events without parseable bounds are
// ignored. The sweep emits slots in chronological order; together with the
// day's events the slots exactly cover the day.
func FreeSlots(day Day, events []calendar.Event) []Slot {
	var busy []calendar.Event
	for _, e := range events {
		if !e.Start.Valid || e.Start.DateOnly {
			continue
		}
		if e.Start.Time.Before(day.Start) || e.Start.Time.After(day.End) {
			continue
		}
		busy = append(busy, e)
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Time.Before(busy[j].Start.Time)
	})

	var slots []Slot
	cursor := day.Start
	for _, e := range busy {
		if e.Start.Time.After(cursor) {
			slots = append(slots, Slot{Start: cursor, End: e.Start.Time})
		}
		if e.End.Valid && e.End.Time.After(cursor) {
			cursor = e.End.Time
		}
	}

	if cursor.Before(day.End) {
		slots = append(slots, Slot{Start: cursor, End: day.End})
	}

	return slots
}

// FormatSlots renders free slots for the user, or an explicit no-free-slots
// message when there are none.
func FormatSlots(day Day, slots []Slot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("No free slots %s.", day.Label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Free slots %s:\n", day.Label)
	for i, s := range slots {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.String())
	}
	return b.String()
}
