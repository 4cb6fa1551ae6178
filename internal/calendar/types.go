package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventTime is one bound of an event. Google Calendar delivers either a
// precise date-time or a date-only value (all-day events); Valid is false
// when neither could be parsed.
type EventTime struct {
	Time     time.Time
	DateOnly bool
	Valid    bool
}

// Event represents a simplified calendar event.
type Event struct {
	ID        string
	Summary   string
	Start     EventTime
	End       EventTime
	Attendees []string
	HTMLLink  string
}

// Timed reports whether both bounds carry precise date-times.
func (e Event) Timed() bool {
	return e.Start.Valid && !e.Start.DateOnly && e.End.Valid && !e.End.DateOnly
}

// EventInput represents the input for creating a calendar event.
// A zero End omits the end bound from the creation request; the caller is
// responsible for applying a default duration when one is wanted.
type EventInput struct {
	Summary       string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// toEventTime converts a Google Calendar event bound, preferring the
// precise date-time over the date-only form.
func toEventTime(edt *calendar.EventDateTime, loc *time.Location) EventTime {
	if edt == nil {
		return EventTime{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return EventTime{Time: t.In(loc), Valid: true}
		}
	}
	if edt.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", edt.Date, loc); err == nil {
			return EventTime{Time: t, DateOnly: true, Valid: true}
		}
	}
	return EventTime{}
}

// toEvent converts a Google Calendar event to an Event.
func toEvent(event *calendar.Event, loc *time.Location) Event {
	e := Event{
		ID:       event.Id,
		Summary:  event.Summary,
		Start:    toEventTime(event.Start, loc),
		End:      toEventTime(event.End, loc),
		HTMLLink: event.HtmlLink,
	}

	for _, att := range event.Attendees {
		e.Attendees = append(e.Attendees, att.Email)
	}

	return e
}
