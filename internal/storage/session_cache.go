// Package storage adapts the database layer to the caches the pipeline
// consumes.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/session"
)

// SessionCache is the sqlite-backed session.Cache. Entries older than the
// TTL read as absent; the next login overwrites them in place.
type SessionCache struct {
	repo *database.SessionRepository
	ttl  time.Duration
}

// NewSessionCache creates a session cache over an open database. A ttl <= 0
// means entries never expire.
func NewSessionCache(db *database.DB, ttl time.Duration) *SessionCache {
	return &SessionCache{
		repo: database.NewSessionRepository(db),
		ttl:  ttl,
	}
}

// Get implements session.Cache
func (sc *SessionCache) Get(ctx context.Context, key string) (session.Session, bool, error) {
	raw, storedAt, ok, err := sc.repo.Get(ctx, key)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("session cache get: %w", err)
	}
	if !ok {
		return session.Session{}, false, nil
	}
	if sc.ttl > 0 && time.Since(storedAt) > sc.ttl {
		return session.Session{}, false, nil
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// a corrupt entry behaves like a miss so login can overwrite it
		return session.Session{}, false, nil
	}
	return sess, true, nil
}

// Put implements session.Cache
func (sc *SessionCache) Put(ctx context.Context, key string, sess session.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session cache put: %w", err)
	}
	if err := sc.repo.Put(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("session cache put: %w", err)
	}
	return nil
}
