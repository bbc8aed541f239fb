package ledger

import (
	"log"
	"time"
)

// Watcher polls the ledger change sequence and reloads today's dismissal sets
// when a sibling instance has written. This is the only mechanism by which a
// dismiss in one instance reaches another; convergence is eventual, bounded
// by the poll interval plus one evaluator tick.
type Watcher struct {
	ledger   *Ledger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewWatcher creates a new change watcher.
func NewWatcher(l *Ledger, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		ledger:   l,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the polling loop.
func (w *Watcher) Start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.checkOnce()
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop stops the polling loop.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) checkOnce() {
	seq, err := w.ledger.store.ChangeSeq()
	if err != nil {
		log.Printf("ledger watcher: read seq: %v", err)
		return
	}
	if seq == w.ledger.seq() {
		return
	}

	day := w.now().Format("2006-01-02")
	if err := w.ledger.Refresh(day); err != nil {
		log.Printf("ledger watcher: refresh %s: %v", day, err)
	}
}
