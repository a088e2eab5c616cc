package calendar

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is a calendar entry announcing a gym update.
type Event struct {
	Start       time.Time
	End         time.Time
	Summary     string
	ColorID     string
	Description string
}

// Client creates events in one Google calendar.
type Client struct {
	service    *calendar.Service
	calendarID string
}

func NewClient(ctx context.Context, calendarID string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(calendar.CalendarReadonlyScope, calendar.CalendarEventsScope)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar client: %w", err)
	}
	return &Client{service: srv, calendarID: calendarID}, nil
}

// NewClientFromFile uses a service account json key.
func NewClientFromFile(ctx context.Context, jsonPath, calendarID string) (*Client, error) {
	return NewClient(ctx, calendarID, option.WithCredentialsFile(jsonPath))
}

// Location returns the time zone configured for the calendar.
func (c *Client) Location(ctx context.Context) (*time.Location, error) {
	cal, err := c.service.Calendars.Get(c.calendarID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar %s: %w", c.calendarID, err)
	}
	if cal.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(cal.TimeZone)
}

func (c *Client) CreateEvent(ctx context.Context, e Event) error {
	created, err := c.service.Events.Insert(c.calendarID, toAPIEvent(e)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	log.WithFields(log.Fields{"event": created.Id, "color": e.ColorID, "start": e.Start}).Info("created calendar event")
	return nil
}

func toAPIEvent(e Event) *calendar.Event {
	return &calendar.Event{
		Summary:     e.Summary,
		Description: e.Description,
		ColorId:     e.ColorID,
		Start:       eventTime(e.Start),
		End:         eventTime(e.End),
	}
}

func eventTime(t time.Time) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: t.Location().String(),
	}
}
