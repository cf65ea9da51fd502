package database

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepository handles persisted session cache entries
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.GetConn()}
}

// Get returns the serialized cookie set and its write time for a cache key.
// The third return value is false when no entry exists.
func (sr *SessionRepository) Get(ctx context.Context, key string) (string, time.Time, bool, error) {
	var cookies string
	var storedAt time.Time
	err := sr.db.QueryRowContext(ctx, `
		SELECT cookies, stored_at FROM sessions WHERE cache_key = ?
	`, key).Scan(&cookies, &storedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, err
	}
	return cookies, storedAt, true, nil
}

// Put writes an entry, fully overwriting any previous one for the same key.
// The single-writer pool makes concurrent puts last-write-wins.
func (sr *SessionRepository) Put(ctx context.Context, key, cookies string) error {
	_, err := sr.db.ExecContext(ctx, `
		INSERT INTO sessions (cache_key, cookies, stored_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cache_key) DO UPDATE SET cookies = excluded.cookies, stored_at = excluded.stored_at
	`, key, cookies)
	return err
}

// Delete removes an entry; deleting a missing key is not an error
func (sr *SessionRepository) Delete(ctx context.Context, key string) error {
	_, err := sr.db.ExecContext(ctx, `DELETE FROM sessions WHERE cache_key = ?`, key)
	return err
}
