package notes

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/reminders"
)

// Feed watches the notes directory and delivers complete note-candidate
// snapshots to its handler. Only notes carrying remind_at are delivered;
// everything else belongs to other screens.
type Feed struct {
	dir      string
	interval time.Duration
	handler  func([]reminders.RawNote)
	stopCh   chan struct{}
}

// NewFeed creates a new note feed.
func NewFeed(dir string, interval time.Duration, handler func([]reminders.RawNote)) *Feed {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Feed{
		dir:      dir,
		interval: interval,
		handler:  handler,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic scan loop.
func (f *Feed) Start() error {
	// Run once immediately
	if err := f.scanOnce(); err != nil {
		log.Printf("note feed initial scan error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := f.scanOnce(); err != nil {
					log.Printf("note feed scan error: %v", err)
				}
			case <-f.stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop stops the scan loop.
func (f *Feed) Stop() {
	close(f.stopCh)
}

func (f *Feed) scanOnce() error {
	var snapshot []reminders.RawNote

	err := filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := ReadNote(path)
		if err != nil {
			log.Printf("note feed: read %s: %v", path, err)
			return nil
		}
		if note.Meta.RemindAt == "" {
			return nil
		}

		relPath, err := filepath.Rel(f.dir, path)
		if err != nil {
			relPath = path
		}

		snapshot = append(snapshot, reminders.RawNote{
			ID:           relPath,
			ActivityType: note.Meta.ActivityType,
			Remarks:      note.Meta.Remarks,
			Trigger:      note.Meta.RemindAt,
		})
		return nil
	})
	if err != nil {
		return err
	}

	f.handler(snapshot)
	return nil
}
