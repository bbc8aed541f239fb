package db

import (
	"testing"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	database, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return NewRepository(database)
}

func TestDismissedReminders(t *testing.T) {
	repo := setupTestDB(t)

	// Insert
	if err := repo.InsertDismissed("2026-03-10", KindMeeting, "m1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertDismissed("2026-03-10", KindMeeting, "m2"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertDismissed("2026-03-10", KindNote, "n1"); err != nil {
		t.Fatalf("insert note: %v", err)
	}

	// List is keyed by day and kind
	ids, err := repo.ListDismissed("2026-03-10", KindMeeting)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 meeting dismissals, got %v", ids)
	}

	noteIDs, err := repo.ListDismissed("2026-03-10", KindNote)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(noteIDs) != 1 || noteIDs[0] != "n1" {
		t.Fatalf("expected [n1], got %v", noteIDs)
	}

	// Other days are empty
	other, err := repo.ListDismissed("2026-03-11", KindMeeting)
	if err != nil {
		t.Fatalf("list other day: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no dismissals on other day, got %v", other)
	}

	// Re-dismissing the same id is a no-op
	if err := repo.InsertDismissed("2026-03-10", KindMeeting, "m1"); err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	ids, _ = repo.ListDismissed("2026-03-10", KindMeeting)
	if len(ids) != 2 {
		t.Errorf("duplicate insert changed the set: %v", ids)
	}
}

func TestLogoutDismissal(t *testing.T) {
	repo := setupTestDB(t)

	dismissed, err := repo.IsLogoutDismissed("2026-03-10")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dismissed {
		t.Fatal("expected logout not dismissed initially")
	}

	if err := repo.MarkLogoutDismissed("2026-03-10"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	dismissed, err = repo.IsLogoutDismissed("2026-03-10")
	if err != nil {
		t.Fatalf("check after mark: %v", err)
	}
	if !dismissed {
		t.Fatal("expected logout dismissed")
	}

	// Day-scoped
	dismissed, _ = repo.IsLogoutDismissed("2026-03-11")
	if dismissed {
		t.Error("logout dismissal leaked to another day")
	}
}

func TestChangeSeqBumpsOnWrites(t *testing.T) {
	repo := setupTestDB(t)

	seq0, err := repo.ChangeSeq()
	if err != nil {
		t.Fatalf("seq: %v", err)
	}

	if err := repo.InsertDismissed("2026-03-10", KindMeeting, "m1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	seq1, _ := repo.ChangeSeq()
	if seq1 != seq0+1 {
		t.Errorf("seq after insert = %d, want %d", seq1, seq0+1)
	}

	// Duplicate insert does not bump
	if err := repo.InsertDismissed("2026-03-10", KindMeeting, "m1"); err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	seq2, _ := repo.ChangeSeq()
	if seq2 != seq1 {
		t.Errorf("seq after duplicate insert = %d, want %d", seq2, seq1)
	}

	if err := repo.MarkLogoutDismissed("2026-03-10"); err != nil {
		t.Fatalf("mark logout: %v", err)
	}
	seq3, _ := repo.ChangeSeq()
	if seq3 != seq2+1 {
		t.Errorf("seq after logout mark = %d, want %d", seq3, seq2+1)
	}
}
