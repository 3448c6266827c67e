// Package eventlog persists snapshot rebuild events in SQLite, giving serve
// mode a queryable rebuild history.
package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Event is one recorded snapshot rebuild.
type Event struct {
	ID         int64         `json:"id"`
	SnapshotID string        `json:"snapshotId"`
	Trigger    string        `json:"trigger"`
	Documents  int           `json:"documents"`
	Problems   int           `json:"problems"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Store is a SQLite-backed event log. Use ":memory:" for an in-process log or
// a file path for persistence across restarts.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and if needed initializes) the event log database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rebuilds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id TEXT NOT NULL,
		trigger_source TEXT NOT NULL,
		documents INTEGER NOT NULL,
		problems INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rebuilds_created_at ON rebuilds(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one rebuild event.
func (s *Store) Append(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rebuilds (snapshot_id, trigger_source, documents, problems, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SnapshotID, e.Trigger, e.Documents, e.Problems, e.Duration.Milliseconds(), createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("append rebuild event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, snapshot_id, trigger_source, documents, problems, duration_ms, created_at
		 FROM rebuilds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query rebuild events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var durationMS, createdAt int64
		if err := rows.Scan(&e.ID, &e.SnapshotID, &e.Trigger, &e.Documents, &e.Problems, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan rebuild event: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
