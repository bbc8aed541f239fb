package reminders

import (
	"fmt"
	"log"
	"sync"

	"github.com/mklimuk/sales-pilot/pkg/audio"
)

// Notifier delivers a single system-level notification. Unavailable channels
// are simply not registered; presentation never depends on them.
type Notifier interface {
	Name() string
	Notify(title, body string) error
}

// Presentation is what the user currently sees: up to one toast per track
// plus the logout modal.
type Presentation struct {
	MeetingToast *MeetingCandidate `json:"meeting_toast,omitempty"`
	NoteToast    *NoteCandidate    `json:"note_toast,omitempty"`
	LogoutModal  bool              `json:"logout_modal"`
}

// Dispatcher turns ActiveState transitions into presentation: it records the
// toast or modal, plays the notification cue once per newly-active item, and
// pushes one templated message through each registered notifier. Re-applying
// the same still-active item renders nothing new.
type Dispatcher struct {
	cue       audio.Cue
	notifiers []Notifier

	mu      sync.Mutex
	current Presentation
}

// NewDispatcher creates a Dispatcher. A nil cue is replaced with a no-op.
func NewDispatcher(cue audio.Cue, notifiers ...Notifier) *Dispatcher {
	if cue == nil {
		cue = audio.NopCue{}
	}
	return &Dispatcher{cue: cue, notifiers: notifiers}
}

// AddNotifier registers another notification channel. Call before the engine
// starts ticking.
func (d *Dispatcher) AddNotifier(n Notifier) {
	d.notifiers = append(d.notifiers, n)
}

// Apply reconciles the presentation with the evaluated state.
func (d *Dispatcher) Apply(state ActiveState) {
	d.mu.Lock()

	var newMeeting *MeetingCandidate
	switch {
	case state.Meeting == nil:
		d.current.MeetingToast = nil
	case d.current.MeetingToast == nil || d.current.MeetingToast.ID != state.Meeting.ID:
		m := *state.Meeting
		d.current.MeetingToast = &m
		newMeeting = &m
	}

	var newNote *NoteCandidate
	switch {
	case state.Note == nil:
		d.current.NoteToast = nil
	case d.current.NoteToast == nil || d.current.NoteToast.ID != state.Note.ID:
		n := *state.Note
		d.current.NoteToast = &n
		newNote = &n
	}

	newLogout := state.Logout && !d.current.LogoutModal
	d.current.LogoutModal = state.Logout

	d.mu.Unlock()

	if newMeeting != nil {
		d.announce("Meeting reminder", MeetingBody(newMeeting))
	}
	if newNote != nil {
		d.announce("Activity reminder", NoteBody(newNote))
	}
	if newLogout {
		d.announce("End of day", "Time to wrap up and log out.")
	}
}

func (d *Dispatcher) announce(title, body string) {
	if err := d.cue.Play(); err != nil {
		log.Printf("dispatcher: cue playback: %v", err)
	}
	for _, n := range d.notifiers {
		if err := n.Notify(title, body); err != nil {
			log.Printf("dispatcher: %s notify: %v", n.Name(), err)
		}
	}
}

// ClearMeeting removes the meeting toast and stops the cue (user dismiss).
func (d *Dispatcher) ClearMeeting() {
	d.mu.Lock()
	d.current.MeetingToast = nil
	d.mu.Unlock()
	d.cue.Stop()
}

// ClearNote removes the note toast and stops the cue (user dismiss).
func (d *Dispatcher) ClearNote() {
	d.mu.Lock()
	d.current.NoteToast = nil
	d.mu.Unlock()
	d.cue.Stop()
}

// ClearLogout closes the logout modal and stops the cue (user acknowledge).
func (d *Dispatcher) ClearLogout() {
	d.mu.Lock()
	d.current.LogoutModal = false
	d.mu.Unlock()
	d.cue.Stop()
}

// Snapshot returns a copy of the current presentation.
func (d *Dispatcher) Snapshot() Presentation {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.current
	if p.MeetingToast != nil {
		m := *p.MeetingToast
		p.MeetingToast = &m
	}
	if p.NoteToast != nil {
		n := *p.NoteToast
		p.NoteToast = &n
	}
	return p
}

// MeetingBody renders the notification body for a meeting reminder.
func MeetingBody(c *MeetingCandidate) string {
	return fmt.Sprintf("%s starts at %s", c.Title, c.TriggerTime.Format("15:04"))
}

// NoteBody renders the notification body for a note reminder. Remarks are
// truncated on a rune boundary so notifier channels never receive broken
// UTF-8.
func NoteBody(c *NoteCandidate) string {
	remarks := c.Remarks
	if runes := []rune(remarks); len(runes) > 80 {
		remarks = string(runes[:80]) + "..."
	}
	if remarks == "" {
		return c.ActivityType
	}
	return fmt.Sprintf("%s: %s", c.ActivityType, remarks)
}
