package reminders

import (
	"log"
	"sync"
)

// Aggregator holds the current candidate lists. Each list is replaced
// wholesale whenever its feed delivers a new snapshot; no diffing happens
// here. A candidate with an unparseable trigger is dropped alone, its
// siblings survive.
type Aggregator struct {
	mu       sync.RWMutex
	meetings []MeetingCandidate
	notes    []NoteCandidate
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// ApplyMeetingSnapshot replaces the meeting list with the given snapshot.
func (a *Aggregator) ApplyMeetingSnapshot(items []RawMeeting) {
	parsed := make([]MeetingCandidate, 0, len(items))
	for _, item := range items {
		t, err := ParseTrigger(item.Trigger)
		if err != nil {
			log.Printf("reminders: dropping meeting %q: %v", item.ID, err)
			continue
		}
		parsed = append(parsed, MeetingCandidate{
			ID:          item.ID,
			Title:       item.Title,
			TriggerTime: t,
		})
	}

	a.mu.Lock()
	a.meetings = parsed
	a.mu.Unlock()
}

// ApplyNoteSnapshot replaces the note list with the given snapshot.
func (a *Aggregator) ApplyNoteSnapshot(items []RawNote) {
	parsed := make([]NoteCandidate, 0, len(items))
	for _, item := range items {
		t, err := ParseTrigger(item.Trigger)
		if err != nil {
			log.Printf("reminders: dropping note %q: %v", item.ID, err)
			continue
		}
		parsed = append(parsed, NoteCandidate{
			ID:           item.ID,
			ActivityType: item.ActivityType,
			Remarks:      item.Remarks,
			TriggerTime:  t,
		})
	}

	a.mu.Lock()
	a.notes = parsed
	a.mu.Unlock()
}

// Meetings returns a copy of the current meeting list in feed order.
func (a *Aggregator) Meetings() []MeetingCandidate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]MeetingCandidate, len(a.meetings))
	copy(out, a.meetings)
	return out
}

// Notes returns a copy of the current note list in feed order.
func (a *Aggregator) Notes() []NoteCandidate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]NoteCandidate, len(a.notes))
	copy(out, a.notes)
	return out
}
