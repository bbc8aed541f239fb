package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/db"
)

func setupStore(t *testing.T) *db.Repository {
	t.Helper()
	database, err := db.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db.NewRepository(database)
}

func TestMarkAndCheck(t *testing.T) {
	led := New(setupStore(t))

	if led.IsMeetingDismissed("2026-03-10", "m1") {
		t.Fatal("unexpected dismissal before mark")
	}

	led.MarkMeetingDismissed("2026-03-10", "m1")
	led.MarkNoteDismissed("2026-03-10", "n1")
	led.MarkLogoutDismissed("2026-03-10")

	if !led.IsMeetingDismissed("2026-03-10", "m1") {
		t.Error("meeting dismissal not recorded")
	}
	if !led.IsNoteDismissed("2026-03-10", "n1") {
		t.Error("note dismissal not recorded")
	}
	if !led.IsLogoutDismissed("2026-03-10") {
		t.Error("logout dismissal not recorded")
	}

	// Tracks and days are independent sets
	if led.IsNoteDismissed("2026-03-10", "m1") {
		t.Error("meeting id leaked into note set")
	}
	if led.IsMeetingDismissed("2026-03-11", "m1") {
		t.Error("dismissal leaked into another day")
	}
}

func TestRefreshUnionsPersistedState(t *testing.T) {
	store := setupStore(t)

	// Another instance already dismissed m1 and logout.
	if err := store.InsertDismissed("2026-03-10", db.KindMeeting, "m1"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkLogoutDismissed("2026-03-10"); err != nil {
		t.Fatal(err)
	}

	led := New(store)
	if err := led.Refresh("2026-03-10"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if !led.IsMeetingDismissed("2026-03-10", "m1") {
		t.Error("persisted dismissal not loaded")
	}
	if !led.IsLogoutDismissed("2026-03-10") {
		t.Error("persisted logout flag not loaded")
	}
}

// failingStore rejects writes but keeps the rest of the Store contract.
type failingStore struct {
	*db.Repository
}

func (f *failingStore) InsertDismissed(day, kind, id string) error {
	return errors.New("disk full")
}

func (f *failingStore) MarkLogoutDismissed(day string) error {
	return errors.New("disk full")
}

func TestDismissEffectiveDespiteStoreFailure(t *testing.T) {
	led := New(&failingStore{setupStore(t)})

	led.MarkMeetingDismissed("2026-03-10", "m1")
	if !led.IsMeetingDismissed("2026-03-10", "m1") {
		t.Error("dismissal lost when store write failed")
	}

	led.MarkLogoutDismissed("2026-03-10")
	if !led.IsLogoutDismissed("2026-03-10") {
		t.Error("logout acknowledgment lost when store write failed")
	}
}

func TestRefreshKeepsUnpersistedLocalDismissals(t *testing.T) {
	store := setupStore(t)
	failing := &failingStore{store}
	led := New(failing)

	// Local dismissal that never reached the store.
	led.MarkMeetingDismissed("2026-03-10", "m-local")

	// A sibling's dismissal lands in the store.
	if err := store.InsertDismissed("2026-03-10", db.KindMeeting, "m-sibling"); err != nil {
		t.Fatal(err)
	}

	if err := led.Refresh("2026-03-10"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if !led.IsMeetingDismissed("2026-03-10", "m-local") {
		t.Error("refresh dropped the unpersisted local dismissal")
	}
	if !led.IsMeetingDismissed("2026-03-10", "m-sibling") {
		t.Error("refresh missed the sibling's dismissal")
	}
}

func TestWatcherPicksUpSiblingWrites(t *testing.T) {
	store := setupStore(t)

	// Two ledger instances over the same store stand in for two processes.
	ledA := New(store)
	ledB := New(store)
	if err := ledB.Refresh("2026-03-10"); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(ledB, time.Second)
	w.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	}

	// Instance A dismisses; B has not seen it yet.
	ledA.MarkNoteDismissed("2026-03-10", "n1")
	if ledB.IsNoteDismissed("2026-03-10", "n1") {
		t.Fatal("B saw the dismissal before the watcher ran")
	}

	w.checkOnce()
	if !ledB.IsNoteDismissed("2026-03-10", "n1") {
		t.Error("watcher did not converge B onto A's dismissal")
	}
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	store := setupStore(t)
	led := New(store)
	if err := led.Refresh("2026-03-10"); err != nil {
		t.Fatal(err)
	}

	led.MarkMeetingDismissed("2026-03-10", "m1")

	seqBefore := led.seq()
	storeSeq, err := store.ChangeSeq()
	if err != nil {
		t.Fatal(err)
	}
	if seqBefore != storeSeq {
		t.Errorf("own write left seq stale: ledger=%d store=%d", seqBefore, storeSeq)
	}
}
