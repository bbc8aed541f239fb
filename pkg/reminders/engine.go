package reminders

import (
	"sync"
	"time"
)

// DismissalLedger is the per-day record of already-shown reminders. An id
// present in a day's set is never re-surfaced that day. Writes only ever add
// within a day.
type DismissalLedger interface {
	IsMeetingDismissed(day, id string) bool
	IsNoteDismissed(day, id string) bool
	IsLogoutDismissed(day string) bool
	MarkMeetingDismissed(day, id string)
	MarkNoteDismissed(day, id string)
	MarkLogoutDismissed(day string)
}

// ActiveState holds the three independent reminder slots. The Engine is its
// only writer.
type ActiveState struct {
	Meeting *MeetingCandidate
	Note    *NoteCandidate
	Logout  bool
}

// Config carries the evaluation parameters.
type Config struct {
	// Tick is the evaluation cadence. Defaults to 10s.
	Tick time.Duration
	// Window is how long after its trigger a candidate still qualifies,
	// inclusive at both ends. Defaults to 5m.
	Window time.Duration
	// LogoutHour/LogoutMinute define the daily logout checkpoint. The zero
	// value selects the default 16:30; a negative LogoutHour selects hour
	// zero, which keeps a midnight checkpoint configurable.
	LogoutHour   int
	LogoutMinute int
}

func (c *Config) applyDefaults() {
	if c.Tick <= 0 {
		c.Tick = 10 * time.Second
	}
	if c.Window <= 0 {
		c.Window = 5 * time.Minute
	}
	switch {
	case c.LogoutHour < 0:
		c.LogoutHour = 0
	case c.LogoutHour == 0 && c.LogoutMinute == 0:
		c.LogoutHour = 16
		c.LogoutMinute = 30
	}
	if c.LogoutMinute < 0 {
		c.LogoutMinute = 0
	}
}

// Engine recomputes ActiveState from scratch on a fixed tick, scanning both
// candidate lists against the dismissal ledger and the wall clock.
type Engine struct {
	agg        *Aggregator
	ledger     DismissalLedger
	dispatcher *Dispatcher
	cfg        Config
	now        func() time.Time

	mu    sync.RWMutex
	state ActiveState

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewEngine creates a new evaluation engine.
func NewEngine(agg *Aggregator, ledger DismissalLedger, dispatcher *Dispatcher, cfg Config) *Engine {
	cfg.applyDefaults()
	return &Engine{
		agg:        agg,
		ledger:     ledger,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
}

// Start begins the evaluation loop with an immediate first tick.
func (e *Engine) Start() {
	e.wg.Add(1)
	go e.loop()
}

// Stop stops the loop and waits for shutdown.
func (e *Engine) Stop() {
	close(e.stop)
	e.wg.Wait()
}

func (e *Engine) loop() {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.Tick)
	defer ticker.Stop()

	e.runTick()

	for {
		select {
		case <-ticker.C:
			e.runTick()
		case <-e.stop:
			return
		}
	}
}

// runTick performs one full evaluation. Each track is computed independently;
// a candidate whose trigger falls outside today is never evaluated, which
// keeps yesterday's items from resurfacing when a snapshot still carries them.
func (e *Engine) runTick() {
	now := e.now()
	day := DayKey(now)

	var meeting *MeetingCandidate
	for _, c := range e.agg.Meetings() {
		if e.ledger.IsMeetingDismissed(day, c.ID) {
			continue
		}
		if !e.qualifies(now, day, c.TriggerTime) {
			continue
		}
		c := c
		meeting = &c
		break
	}

	var note *NoteCandidate
	for _, c := range e.agg.Notes() {
		if e.ledger.IsNoteDismissed(day, c.ID) {
			continue
		}
		if !e.qualifies(now, day, c.TriggerTime) {
			continue
		}
		c := c
		note = &c
		break
	}

	e.mu.Lock()
	// A dismiss can land between the scan above and this assignment; the
	// ledger is re-checked under the lock so a just-dismissed candidate is
	// never written back into its slot.
	if meeting != nil && e.ledger.IsMeetingDismissed(day, meeting.ID) {
		meeting = nil
	}
	if note != nil && e.ledger.IsNoteDismissed(day, note.ID) {
		note = nil
	}
	logout := e.state.Logout
	if !logout &&
		now.Hour() == e.cfg.LogoutHour && now.Minute() == e.cfg.LogoutMinute &&
		!e.ledger.IsLogoutDismissed(day) {
		logout = true
	}
	e.state = ActiveState{Meeting: meeting, Note: note, Logout: logout}
	if e.dispatcher != nil {
		// Dispatch under the same lock as the dismiss paths so a dismiss
		// cannot interleave between the state write and its presentation.
		e.dispatcher.Apply(e.state)
	}
	e.mu.Unlock()
}

func (e *Engine) qualifies(now time.Time, day string, trigger time.Time) bool {
	if DayKey(trigger) != day {
		return false
	}
	delta := now.Sub(trigger)
	return delta >= 0 && delta <= e.cfg.Window
}

// Active returns a copy of the current ActiveState.
func (e *Engine) Active() ActiveState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	state := e.state
	if state.Meeting != nil {
		m := *state.Meeting
		state.Meeting = &m
	}
	if state.Note != nil {
		n := *state.Note
		state.Note = &n
	}
	return state
}

// DismissMeeting records the dismissal for today and clears the meeting slot
// immediately, without waiting for the next tick.
func (e *Engine) DismissMeeting(id string) {
	e.ledger.MarkMeetingDismissed(DayKey(e.now()), id)

	e.mu.Lock()
	if e.state.Meeting != nil && e.state.Meeting.ID == id {
		e.state.Meeting = nil
	}
	if e.dispatcher != nil {
		e.dispatcher.ClearMeeting()
	}
	e.mu.Unlock()
}

// DismissNote records the dismissal for today and clears the note slot
// immediately.
func (e *Engine) DismissNote(id string) {
	e.ledger.MarkNoteDismissed(DayKey(e.now()), id)

	e.mu.Lock()
	if e.state.Note != nil && e.state.Note.ID == id {
		e.state.Note = nil
	}
	if e.dispatcher != nil {
		e.dispatcher.ClearNote()
	}
	e.mu.Unlock()
}

// DismissLogout acknowledges the logout checkpoint for today.
func (e *Engine) DismissLogout() {
	e.ledger.MarkLogoutDismissed(DayKey(e.now()))

	e.mu.Lock()
	e.state.Logout = false
	if e.dispatcher != nil {
		e.dispatcher.ClearLogout()
	}
	e.mu.Unlock()
}
