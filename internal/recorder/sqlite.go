package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists view history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS view_transitions (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			view      TEXT NOT NULL,
			param     TEXT,
			status    TEXT NOT NULL,
			err_kind  TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_view_ts ON view_transitions(view, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			op          TEXT NOT NULL,
			target      TEXT,
			duration_ms INTEGER,
			err_kind    TEXT,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTransition(t *Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := t.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO view_transitions
		(id, timestamp, view, param, status, err_kind, error)
		VALUES (?,?,?,?,?,?,?)`,
		t.ID, at.UnixMilli(), t.View, t.Param, t.Status, t.ErrKind, t.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, op, target, duration_ms, err_kind, error)
		VALUES (?,?,?,?,?,?)`,
		at.UnixMilli(), evt.Op, evt.Target, evt.DurationMS, evt.ErrKind, evt.Error,
	)
	return err
}

// CountTransitions returns how many transitions were recorded for view.
func (r *SQLiteRecorder) CountTransitions(view string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM view_transitions WHERE view = ?`, view).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
