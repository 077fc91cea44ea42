package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Backing is the persistence boundary for sessions
type Backing interface {
	Load(userID int64) (*Session, bool, error)
	Save(userID int64, s *Session) error
	Delete(userID int64) error
	Close() error
}

// SQLiteBacking stores one JSON-serialized session per user in SQLite
type SQLiteBacking struct {
	db *sql.DB
}

// NewSQLiteBacking opens (and if needed creates) the session database
func NewSQLiteBacking(path string) (*SQLiteBacking, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS sessions (
		user_id    INTEGER PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQLiteBacking{db: db}, nil
}

// Load returns the stored session for a user, or found=false when absent
func (b *SQLiteBacking) Load(userID int64) (*Session, bool, error) {
	var data string
	err := b.db.QueryRow(`SELECT data FROM sessions WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, false, fmt.Errorf("failed to decode session: %w", err)
	}

	return &s, true, nil
}

// Save upserts the session for a user
func (b *SQLiteBacking) Save(userID int64, s *Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT INTO sessions (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Delete removes the session row for a user
func (b *SQLiteBacking) Delete(userID int64) error {
	if _, err := b.db.Exec(`DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteIdle removes sessions not updated since the cutoff and returns the
// number of rows removed
func (b *SQLiteBacking) DeleteIdle(cutoff time.Time) (int64, error) {
	res, err := b.db.Exec(`DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database
func (b *SQLiteBacking) Close() error {
	return b.db.Close()
}
