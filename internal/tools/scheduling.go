package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rvaidya/meetingmate/internal/calendar"
	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
	"github.com/rvaidya/meetingmate/internal/schedule"
)

// CalendarGateway is the calendar surface the scheduling tools need.
// *calendar.Client satisfies it.
type CalendarGateway interface {
	ListUpcomingEvents(ctx context.Context) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.Event, error)
}

// TimeParser resolves free-text time expressions against a reference
// instant. *timeparse.Parser satisfies it.
type TimeParser interface {
	Parse(text string, ref time.Time) (time.Time, error)
}

// Scheduler provides the scheduling tools: availability lookup and meeting
// booking.
type Scheduler struct {
	gateway CalendarGateway
	parser  TimeParser
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time
}

// NewScheduler wires the scheduling tools to a calendar gateway and a time
// parser, resolving days and times in loc.
func NewScheduler(gateway CalendarGateway, parser TimeParser, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		gateway: gateway,
		parser:  parser,
		loc:     loc,
		logger:  logger,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// Tools returns the scheduler's tool set for registry construction.
func (s *Scheduler) Tools() []Tool {
	return []Tool{
		{
			Name:        "check_availability",
			Description: "Returns available time slots for the specified day ('today' or 'tomorrow'). Scans the calendar's events and finds gaps between meetings.",
			Params: []Param{
				{
					Name:        "day",
					Type:        "string",
					Description: "Which day to check: 'today' or 'tomorrow' (default: 'today')",
					Enum:        []string{"today", "tomorrow"},
				},
			},
			Handler: s.checkAvailability,
		},
		{
			Name:        "book_meeting",
			Description: "Books a meeting in the calendar. Refuses to book over existing events. End time is optional and defaults to one hour after the start.",
			Params: []Param{
				{
					Name:        "summary",
					Type:        "string",
					Description: "Title of the meeting",
					Required:    true,
				},
				{
					Name:        "start_time",
					Type:        "string",
					Description: "Start time, e.g. 'tomorrow at 5pm' or an RFC3339 timestamp",
					Required:    true,
				},
				{
					Name:        "end_time",
					Type:        "string",
					Description: "Optional end time; defaults to one hour after the start",
				},
				{
					Name:        "attendee_email",
					Type:        "string",
					Description: "Optional email address of a single attendee to invite",
				},
			},
			Handler: s.bookMeeting,
		},
	}
}

func (s *Scheduler) checkAvailability(ctx context.Context, args map[string]any) string {
	day := schedule.ResolveDay(s.now(), stringArg(args, "day"))

	events, err := s.gateway.ListUpcomingEvents(ctx)
	if err != nil {
		s.logger.Warn("availability lookup failed", logging.Operation("list"), logging.Err(err))
		return fmt.Sprintf("%s Error checking availability: %v", FailureMarker, err)
	}

	slots := schedule.FreeSlots(day, events)
	return schedule.FormatSlots(day, slots)
}

func (s *Scheduler) bookMeeting(ctx context.Context, args map[string]any) string {
	summary := stringArg(args, "summary")
	if summary == "" {
		return fmt.Sprintf("%s A meeting title is required.", FailureMarker)
	}

	now := s.now()

	start, err := s.parser.Parse(stringArg(args, "start_time"), now)
	if err != nil {
		return fmt.Sprintf("%s Could not understand the start time.", FailureMarker)
	}

	end := start.Add(schedule.DefaultDuration)
	if endText := stringArg(args, "end_time"); endText != "" {
		end, err = s.parser.Parse(endText, now)
		if err != nil {
			return fmt.Sprintf("%s Could not understand the end time.", FailureMarker)
		}
	}

	// Re-fetch just before booking so the conflict check sees the latest
	// calendar state.
	events, err := s.gateway.ListUpcomingEvents(ctx)
	if err != nil {
		s.logger.Warn("pre-booking listing failed", logging.Operation("list"), logging.Err(err))
		return fmt.Sprintf("%s Error booking meeting: %v", FailureMarker, err)
	}

	if conflict := schedule.FindConflict(start, end, events); conflict != nil {
		title := conflict.Summary
		if title == "" {
			title = "Untitled"
		}
		return fmt.Sprintf("%s You already have a meeting '%s' at that time.", ConflictMarker, title)
	}

	created, err := s.gateway.CreateEvent(ctx, calendar.EventInput{
		Summary:       summary,
		Start:         start,
		End:           end,
		AttendeeEmail: stringArg(args, "attendee_email"),
	})
	if err != nil {
		s.logger.Warn("event creation failed", logging.Operation("create"), logging.Err(err))
		return fmt.Sprintf("%s Failed to create event. Please check your credentials or input format.", FailureMarker)
	}

	s.logger.Info("meeting booked",
		logging.Operation("create"),
		slog.String("event_id", created.ID),
		slog.String("attendee_domain", instrumentation.ExtractUserDomain(stringArg(args, "attendee_email"))),
	)

	link := created.HTMLLink
	if link == "" {
		link = "Link unavailable"
	}
	return fmt.Sprintf("✅ Meeting booked!\n📅 View in Google Calendar: %s", link)
}
