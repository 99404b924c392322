package history

import (
	"context"
	"database/sql"
)

// Match is one finished game as recorded in the matches table.
type Match struct {
	SessionID  int64  `json:"sessionId"`
	Winner     string `json:"winner"`
	Value      int    `json:"value"`
	Guesses    int    `json:"guesses"`
	FinishedAt string `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the matches table if missing. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS matches (
		session_id INTEGER PRIMARY KEY,
		winner TEXT NOT NULL,
		value INTEGER NOT NULL,
		guesses INTEGER NOT NULL,
		finished_at TEXT NOT NULL
	)`)
	return err
}

// Record stores one finished match. Replays of the same session id are
// ignored so the absorbing GameOver state cannot double-insert.
func (s *Store) Record(ctx context.Context, m Match) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO matches(session_id, winner, value, guesses, finished_at)
		 VALUES(?,?,?,?,?)`, m.SessionID, m.Winner, m.Value, m.Guesses, m.FinishedAt,
	)
	return err
}

// Recent returns the latest finished matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, winner, value, guesses, finished_at
		 FROM matches
		 ORDER BY finished_at DESC, session_id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.SessionID, &m.Winner, &m.Value, &m.Guesses, &m.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
