// Package store provides a SQLite-backed history of completed payment
// cycles, giving trend context beyond the single last-period ledger cell.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Run is one recorded payment cycle. Money fields are exact decimal
// strings; PlanJSON holds the full ordered plan.
type Run struct {
	ID           string
	RanAt        time.Time
	CurrentTotal string
	LastTotal    string
	Delta        string
	Direction    string
	PlanJSON     string
	Notified     bool
}

// DefaultPath returns the XDG-compliant history database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "loanbot", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "loanbot", "history.db")
}

// History provides SQLite-backed run persistence.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one completed run.
func (h *History) Record(r Run) error {
	notified := 0
	if r.Notified {
		notified = 1
	}

	_, err := h.db.Exec(`INSERT OR REPLACE INTO runs
		(run_id, ran_at, current_total, last_total, delta, direction, plan_json, notified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.RanAt.UTC().Format(time.RFC3339), r.CurrentTotal, r.LastTotal,
		r.Delta, r.Direction, r.PlanJSON, notified,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(limit int) ([]Run, error) {
	rows, err := h.db.Query(`SELECT
		run_id, ran_at, current_total, last_total, delta, direction, plan_json, notified
		FROM runs ORDER BY ran_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt string
		var notified int
		if err := rows.Scan(&r.ID, &ranAt, &r.CurrentTotal, &r.LastTotal,
			&r.Delta, &r.Direction, &r.PlanJSON, &notified); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ranAt); err == nil {
			r.RanAt = t
		}
		r.Notified = notified != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
