package ledger

import (
	"fmt"
	"log"
	"sync"

	"github.com/mklimuk/sales-pilot/pkg/db"
)

// Store is the persistence backend for the dismissal ledger.
// *db.Repository implements it.
type Store interface {
	InsertDismissed(day, kind, reminderID string) error
	ListDismissed(day, kind string) ([]string, error)
	MarkLogoutDismissed(day string) error
	IsLogoutDismissed(day string) (bool, error)
	ChangeSeq() (int64, error)
}

// Ledger is the day-keyed dismissal record with a write-through in-memory
// cache. Reads are served from the cache; writes update the cache first so a
// dismiss still takes effect locally when the store write fails; the item
// may then resurface in a sibling instance, which is accepted.
type Ledger struct {
	store Store

	mu       sync.RWMutex
	meetings map[string]map[string]bool
	notes    map[string]map[string]bool
	logout   map[string]bool
	lastSeq  int64
}

// New creates a Ledger over the given store.
func New(store Store) *Ledger {
	return &Ledger{
		store:    store,
		meetings: make(map[string]map[string]bool),
		notes:    make(map[string]map[string]bool),
		logout:   make(map[string]bool),
	}
}

// Refresh unions the persisted sets for a day into the cache and records the
// current change sequence. Union only: a locally cached dismissal that never
// made it to the store is kept.
func (l *Ledger) Refresh(day string) error {
	meetingIDs, err := l.store.ListDismissed(day, db.KindMeeting)
	if err != nil {
		return fmt.Errorf("refresh meetings: %w", err)
	}
	noteIDs, err := l.store.ListDismissed(day, db.KindNote)
	if err != nil {
		return fmt.Errorf("refresh notes: %w", err)
	}
	logoutDismissed, err := l.store.IsLogoutDismissed(day)
	if err != nil {
		return fmt.Errorf("refresh logout: %w", err)
	}
	seq, err := l.store.ChangeSeq()
	if err != nil {
		return fmt.Errorf("refresh seq: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range meetingIDs {
		l.daySet(l.meetings, day)[id] = true
	}
	for _, id := range noteIDs {
		l.daySet(l.notes, day)[id] = true
	}
	if logoutDismissed {
		l.logout[day] = true
	}
	l.lastSeq = seq
	return nil
}

// IsMeetingDismissed reports whether the meeting id was dismissed on the day.
func (l *Ledger) IsMeetingDismissed(day, id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meetings[day][id]
}

// IsNoteDismissed reports whether the note id was dismissed on the day.
func (l *Ledger) IsNoteDismissed(day, id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.notes[day][id]
}

// IsLogoutDismissed reports whether the logout checkpoint was acknowledged on
// the day.
func (l *Ledger) IsLogoutDismissed(day string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logout[day]
}

// MarkMeetingDismissed records a meeting dismissal for the day.
func (l *Ledger) MarkMeetingDismissed(day, id string) {
	l.mu.Lock()
	l.daySet(l.meetings, day)[id] = true
	l.mu.Unlock()

	if err := l.store.InsertDismissed(day, db.KindMeeting, id); err != nil {
		log.Printf("ledger: persist meeting dismissal %s/%s: %v", day, id, err)
		return
	}
	l.syncSeq()
}

// MarkNoteDismissed records a note dismissal for the day.
func (l *Ledger) MarkNoteDismissed(day, id string) {
	l.mu.Lock()
	l.daySet(l.notes, day)[id] = true
	l.mu.Unlock()

	if err := l.store.InsertDismissed(day, db.KindNote, id); err != nil {
		log.Printf("ledger: persist note dismissal %s/%s: %v", day, id, err)
		return
	}
	l.syncSeq()
}

// MarkLogoutDismissed records the logout acknowledgment for the day.
func (l *Ledger) MarkLogoutDismissed(day string) {
	l.mu.Lock()
	l.logout[day] = true
	l.mu.Unlock()

	if err := l.store.MarkLogoutDismissed(day); err != nil {
		log.Printf("ledger: persist logout dismissal %s: %v", day, err)
		return
	}
	l.syncSeq()
}

// DaySummary lists the persisted dismissal state of a single day.
type DaySummary struct {
	Day             string   `json:"day"`
	Meetings        []string `json:"meetings"`
	Notes           []string `json:"notes"`
	LogoutDismissed bool     `json:"logout_dismissed"`
}

// Summary reads a day's dismissal record straight from the store.
func (l *Ledger) Summary(day string) (*DaySummary, error) {
	meetingIDs, err := l.store.ListDismissed(day, db.KindMeeting)
	if err != nil {
		return nil, err
	}
	noteIDs, err := l.store.ListDismissed(day, db.KindNote)
	if err != nil {
		return nil, err
	}
	logoutDismissed, err := l.store.IsLogoutDismissed(day)
	if err != nil {
		return nil, err
	}
	return &DaySummary{
		Day:             day,
		Meetings:        meetingIDs,
		Notes:           noteIDs,
		LogoutDismissed: logoutDismissed,
	}, nil
}

// syncSeq records the post-write sequence so the watcher does not treat our
// own write as an external change.
func (l *Ledger) syncSeq() {
	seq, err := l.store.ChangeSeq()
	if err != nil {
		return
	}
	l.mu.Lock()
	if seq > l.lastSeq {
		l.lastSeq = seq
	}
	l.mu.Unlock()
}

func (l *Ledger) seq() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastSeq
}

func (l *Ledger) daySet(m map[string]map[string]bool, day string) map[string]bool {
	set, ok := m[day]
	if !ok {
		set = make(map[string]bool)
		m[day] = set
	}
	return set
}
