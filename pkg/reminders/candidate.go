package reminders

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MeetingCandidate is a scheduled meeting eligible to surface as a reminder.
type MeetingCandidate struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TriggerTime time.Time `json:"trigger_time"`
}

// NoteCandidate is an ad-hoc note reminder with a remind-at instant.
type NoteCandidate struct {
	ID           string    `json:"id"`
	ActivityType string    `json:"activity_type"`
	Remarks      string    `json:"remarks"`
	TriggerTime  time.Time `json:"trigger_time"`
}

// RawMeeting is a meeting as delivered by a feed, trigger still unparsed.
type RawMeeting struct {
	ID      string
	Title   string
	Trigger string
}

// RawNote is a note reminder as delivered by a feed, trigger still unparsed.
type RawNote struct {
	ID           string
	ActivityType string
	Remarks      string
	Trigger      string
}

// triggerLayouts are the date-like string formats feeds are known to deliver.
// Layouts without a zone are interpreted in local time.
var triggerLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTrigger parses a trigger instant from a server timestamp (unix seconds)
// or a date-like string.
func ParseTrigger(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty trigger time")
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range triggerLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable trigger time %q", raw)
}

// DayKey returns the calendar-day key (local time) used by the dismissal ledger.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
