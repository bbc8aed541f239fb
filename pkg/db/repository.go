package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Reminder kinds stored in the ledger.
const (
	KindMeeting = "meeting"
	KindNote    = "note"
)

// Repository handles data access
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// InsertDismissed records a dismissed reminder id for the given day and bumps
// the change sequence in the same transaction. Re-dismissing is a no-op.
func (r *Repository) InsertDismissed(day, kind, reminderID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO dismissed_reminders (day, kind, reminder_id, dismissed_at) VALUES (?, ?, ?, ?)`,
		day, kind, reminderID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dismissal: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		if _, err := tx.Exec(`UPDATE ledger_seq SET seq = seq + 1 WHERE id = 1`); err != nil {
			return fmt.Errorf("failed to bump ledger seq: %w", err)
		}
	}

	return tx.Commit()
}

// ListDismissed returns all dismissed ids for a day and kind.
func (r *Repository) ListDismissed(day, kind string) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT reminder_id FROM dismissed_reminders WHERE day = ? AND kind = ?`,
		day, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dismissals: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dismissal: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkLogoutDismissed records the logout acknowledgment for a day.
func (r *Repository) MarkLogoutDismissed(day string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO dismissed_logout (day, dismissed_at) VALUES (?, ?)`,
		day, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark logout dismissed: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		if _, err := tx.Exec(`UPDATE ledger_seq SET seq = seq + 1 WHERE id = 1`); err != nil {
			return fmt.Errorf("failed to bump ledger seq: %w", err)
		}
	}

	return tx.Commit()
}

// IsLogoutDismissed reports whether the logout checkpoint was acknowledged on
// the given day.
func (r *Repository) IsLogoutDismissed(day string) (bool, error) {
	row := r.db.QueryRow(`SELECT 1 FROM dismissed_logout WHERE day = ?`, day)
	var one int
	err := row.Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check logout dismissal: %w", err)
	}
	return true, nil
}

// ChangeSeq returns the current ledger change sequence.
func (r *Repository) ChangeSeq() (int64, error) {
	row := r.db.QueryRow(`SELECT seq FROM ledger_seq WHERE id = 1`)
	var seq int64
	if err := row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read ledger seq: %w", err)
	}
	return seq, nil
}
