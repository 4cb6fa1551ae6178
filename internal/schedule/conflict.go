package schedule

import (
	"time"

	"github.com/rvaidya/meetingmate/internal/calendar"
)

// DefaultDuration is the booking length applied when no end time is given.
const DefaultDuration = time.Hour

// FindConflict reports the first existing event whose interval strictly
// overlaps the proposed [start, end) booking, or nil when the booking is
// clear.
//
// Overlap uses open-interval semantics: start < existingEnd && end >
// existingStart, so back-to-back events never conflict. Event bounds prefer
// the precise date-time and fall back to the date-only value; events
// lacking either bound are skipped.
func FindConflict(start, end time.Time, events []calendar.Event) *calendar.Event {
	for i := range events {
		e := &events[i]
		if !e.Start.Valid || !e.End.Valid {
			continue
		}
		if start.Before(e.End.Time) && end.After(e.Start.Time) {
			return e
		}
	}
	return nil
}
