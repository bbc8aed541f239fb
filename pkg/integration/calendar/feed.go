package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/reminders"
)

// Feed polls the calendar and delivers complete meeting-candidate snapshots
// to its handler. Snapshots replace each other wholesale; the feed never
// diffs.
type Feed struct {
	service  CalendarAPI
	interval time.Duration
	handler  func([]reminders.RawMeeting)
	now      func() time.Time
	stopCh   chan struct{}
}

// NewFeed creates a new meeting feed.
func NewFeed(service CalendarAPI, interval time.Duration, handler func([]reminders.RawMeeting)) *Feed {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Feed{
		service:  service,
		interval: interval,
		handler:  handler,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic poll loop.
func (f *Feed) Start() error {
	// Run once immediately
	if err := f.pollOnce(); err != nil {
		log.Printf("Calendar feed initial poll error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := f.pollOnce(); err != nil {
					log.Printf("Calendar feed poll error: %v", err)
				}
			case <-f.stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop stops the poll loop.
func (f *Feed) Stop() {
	close(f.stopCh)
}

func (f *Feed) pollOnce() error {
	ctx := context.Background()
	events, err := f.service.FetchDay(ctx, f.now())
	if err != nil {
		return fmt.Errorf("fetch day: %w", err)
	}

	snapshot := make([]reminders.RawMeeting, 0, len(events))
	for _, evt := range events {
		snapshot = append(snapshot, reminders.RawMeeting{
			ID:      evt.ID,
			Title:   evt.Summary,
			Trigger: evt.StartTime.Format(time.RFC3339),
		})
	}

	f.handler(snapshot)
	return nil
}
