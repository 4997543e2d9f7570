// Package history records typing sessions in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Session is one finished typing session. The typed text is never stored.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
	Length    int
	Typed     int
	Typos     int
	Speed     int
	Variance  float64
	TypoRate  float64
	Error     string
}

func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Summary aggregates every recorded session.
type Summary struct {
	Sessions   int
	Characters int
	Typos      int
	ByOutcome  map[string]int
}

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating history: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			outcome TEXT NOT NULL,
			length INTEGER NOT NULL,
			typed INTEGER NOT NULL,
			typos INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			variance REAL NOT NULL,
			typo_rate REAL NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Insert stores a finished session.
func (s *Store) Insert(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, outcome, length, typed, typos, speed, variance, typo_rate, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.StartedAt.UTC().Format(time.RFC3339Nano),
		sess.EndedAt.UTC().Format(time.RFC3339Nano),
		sess.Outcome,
		sess.Length,
		sess.Typed,
		sess.Typos,
		sess.Speed,
		sess.Variance,
		sess.TypoRate,
		sess.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", sess.ID, err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, outcome, length, typed, typos, speed, variance, typo_rate, error
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started, ended string
		if err := rows.Scan(&sess.ID, &started, &ended, &sess.Outcome, &sess.Length, &sess.Typed,
			&sess.Typos, &sess.Speed, &sess.Variance, &sess.TypoRate, &sess.Error); err != nil {
			return nil, err
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("session %s: %w", sess.ID, err)
		}
		if sess.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, fmt.Errorf("session %s: %w", sess.ID, err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Summarize aggregates all sessions.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{ByOutcome: make(map[string]int)}
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*), COALESCE(SUM(typed), 0), COALESCE(SUM(typos), 0)
		 FROM sessions
		 GROUP BY outcome`)
	if err != nil {
		return sum, err
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var n, typed, typos int
		if err := rows.Scan(&outcome, &n, &typed, &typos); err != nil {
			return sum, err
		}
		sum.ByOutcome[outcome] = n
		sum.Sessions += n
		sum.Characters += typed
		sum.Typos += typos
	}
	return sum, rows.Err()
}
