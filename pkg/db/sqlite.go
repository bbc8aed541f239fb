package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sql.DB connection
type DB struct {
	*sql.DB
}

// NewDB creates a new SQLite database connection
func NewDB(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.DB.Close()
}

// InitSchema initializes the dismissal ledger schema. The ledger file is
// shared by every running instance on the machine; within a day writes only
// ever add. ledger_seq is bumped on every write so siblings can detect
// external changes.
func (d *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dismissed_reminders (
		day TEXT NOT NULL,
		kind TEXT NOT NULL,
		reminder_id TEXT NOT NULL,
		dismissed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (day, kind, reminder_id)
	);

	CREATE TABLE IF NOT EXISTS dismissed_logout (
		day TEXT PRIMARY KEY,
		dismissed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ledger_seq (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		seq INTEGER NOT NULL
	);
	INSERT OR IGNORE INTO ledger_seq (id, seq) VALUES (1, 0);
	`

	_, err := d.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}

	return nil
}
