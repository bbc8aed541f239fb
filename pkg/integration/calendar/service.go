package calendar

import (
	"context"
	"fmt"
	"time"

	googleauth "github.com/mklimuk/sales-pilot/pkg/integration/google"
	gcal "google.golang.org/api/calendar/v3"
)

// Event is a simplified calendar event used by the meeting feed.
type Event struct {
	ID        string
	Summary   string
	StartTime time.Time
}

// CalendarAPI is the interface used by Feed for testability.
type CalendarAPI interface {
	FetchDay(ctx context.Context, day time.Time) ([]Event, error)
}

// Service wraps the Google Calendar API.
type Service struct {
	srv        *gcal.Service
	calendarID string
}

// NewService creates a new Calendar service using service account credentials.
func NewService(ctx context.Context, credentialsFile, calendarID string) (*Service, error) {
	opt := googleauth.ClientOption(credentialsFile)
	srv, err := gcal.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Service{srv: srv, calendarID: calendarID}, nil
}

// FetchDay returns all events of the calendar day containing the given
// instant, in start-time order.
func (s *Service) FetchDay(ctx context.Context, day time.Time) ([]Event, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	events, err := s.srv.Events.List(s.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var result []Event
	for _, item := range events.Items {
		start, err := parseEventTime(item.Start)
		if err != nil {
			continue
		}
		result = append(result, Event{
			ID:        item.Id,
			Summary:   item.Summary,
			StartTime: start,
		})
	}
	return result, nil
}

func parseEventTime(edt *gcal.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("nil event datetime")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	if edt.Date != "" {
		return time.Parse("2006-01-02", edt.Date)
	}
	return time.Time{}, fmt.Errorf("empty event datetime")
}
