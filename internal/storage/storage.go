// Package storage persists battle sessions and their per-turn actions in
// SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store handles database operations for battle session logging. A nil
// Store is valid on the write paths and discards everything, so the battle
// loop opts into persistence simply by being handed one.
type Store struct {
	db *sql.DB
}

// Session is one recorded battle.
type Session struct {
	ID        string
	Seed      int64
	StartedAt time.Time
	Winner    string // empty until the battle finishes
	Turns     int
}

// ActionRecord is one applied action within a session.
type ActionRecord struct {
	ID        int64
	SessionID string
	Turn      int
	ActorID   int
	ActorName string
	Action    string
	TargetID  int
	Detail    string
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		winner TEXT,
		turns INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		actor_id INTEGER NOT NULL,
		actor_name TEXT NOT NULL,
		action TEXT NOT NULL,
		target_id INTEGER NOT NULL,
		detail TEXT,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session_id);
	CREATE INDEX IF NOT EXISTS idx_actions_session_turn ON actions(session_id, turn);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// NewSession records the start of a battle and returns the session id.
// On a nil Store the id is empty and nothing is recorded.
func (s *Store) NewSession(seed int64) (string, error) {
	if s == nil {
		return "", nil
	}
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, seed, started_at) VALUES (?, ?, ?)`,
		id, seed, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// RecordAction logs one applied action.
func (s *Store) RecordAction(a *ActionRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO actions (session_id, turn, actor_id, actor_name, action, target_id, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.Turn, a.ActorID, a.ActorName, a.Action, a.TargetID, a.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

// FinishSession records the battle's outcome.
func (s *Store) FinishSession(id, winner string, turns int) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`UPDATE sessions SET winner = ?, turns = ? WHERE id = ?`,
		winner, turns, id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, started_at, winner, turns FROM sessions WHERE id = ?`, id,
	)
	var sess Session
	var winner sql.NullString
	if err := row.Scan(&sess.ID, &sess.Seed, &sess.StartedAt, &winner, &sess.Turns); err != nil {
		return nil, err
	}
	if winner.Valid {
		sess.Winner = winner.String
	}
	return &sess, nil
}

// ListSessions returns all recorded sessions, most recent first.
func (s *Store) ListSessions() ([]*Session, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, started_at, winner, turns
		 FROM sessions ORDER BY started_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var sess Session
		var winner sql.NullString
		if err := rows.Scan(&sess.ID, &sess.Seed, &sess.StartedAt, &winner, &sess.Turns); err != nil {
			return nil, err
		}
		if winner.Valid {
			sess.Winner = winner.String
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// SessionActions returns a session's actions in the order they were applied.
func (s *Store) SessionActions(sessionID string) ([]*ActionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, turn, actor_id, actor_name, action, target_id, detail
		 FROM actions WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*ActionRecord
	for rows.Next() {
		var a ActionRecord
		var detail sql.NullString
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Turn, &a.ActorID, &a.ActorName,
			&a.Action, &a.TargetID, &detail); err != nil {
			return nil, err
		}
		if detail.Valid {
			a.Detail = detail.String
		}
		actions = append(actions, &a)
	}
	return actions, rows.Err()
}
