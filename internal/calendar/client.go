package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
)

// DefaultMaxResults caps how many upcoming events a single listing returns.
const DefaultMaxResults = 20

// Options configures a calendar Client.
type Options struct {
	// CredentialsFile is the path to a Google service account key JSON.
	CredentialsFile string

	// CalendarID selects the calendar to operate on (default "primary").
	CalendarID string

	// Location is the single timezone scheduling is resolved in.
	Location *time.Location

	// MaxResults caps listed events per call (default DefaultMaxResults).
	MaxResults int64
}

// Client wraps the Google Calendar service for a single calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
	maxResults int64
	metrics    *instrumentation.Metrics
	now        func() time.Time
}

// NewClient creates a Calendar client authenticated with a service account.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.CredentialsFile == "" {
		return nil, fmt.Errorf("credentials file is required")
	}

	data, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return newClient(svc, opts), nil
}

func newClient(svc *calendar.Service, opts Options) *Client {
	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		loc:        loc,
		maxResults: maxResults,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// SetMetrics attaches a metrics recorder for calendar API operations.
func (c *Client) SetMetrics(m *instrumentation.Metrics) {
	c.metrics = m
}

// CalendarID returns the calendar this client operates on.
func (c *Client) CalendarID() string {
	return c.calendarID
}

// Location returns the timezone the client resolves times in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// ListUpcomingEvents lists events from now forward, soonest start first.
// Recurring events are expanded to single instances by the provider.
func (c *Client) ListUpcomingEvents(ctx context.Context) ([]Event, error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationList)
	defer span.End()

	start := time.Now()
	result, err := c.svc.Events.List(c.calendarID).
		TimeMin(c.now().Format(time.RFC3339)).
		MaxResults(c.maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	c.recordOperation(ctx, instrumentation.OperationList, err, time.Since(start))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	var events []Event
	for _, item := range result.Items {
		events = append(events, toEvent(item, c.loc))
	}

	return events, nil
}

// CreateEvent creates a new calendar event. When input.End is zero the
// request carries no end bound.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*Event, error) {
	event := &calendar.Event{
		Summary: input.Summary,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
	}

	if !input.End.IsZero() {
		event.End = &calendar.EventDateTime{
			DateTime: input.End.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		}
	}

	if input.AttendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{
			{Email: input.AttendeeEmail},
		}
	}

	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationInsert)
	defer span.End()

	start := time.Now()
	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	c.recordOperation(ctx, instrumentation.OperationInsert, err, time.Since(start))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	result := toEvent(created, c.loc)
	return &result, nil
}

func (c *Client) recordOperation(ctx context.Context, operation string, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordCalendarOperation(ctx, operation, status, duration)
}
