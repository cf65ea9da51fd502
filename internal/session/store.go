package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"linkedin-scraper/internal/models"
)

// ErrAuthentication is wrapped by every session acquisition failure: bad
// credentials, a changed login UI, or the authenticator giving up.
var ErrAuthentication = errors.New("authentication failed")

// Authenticator obtains a fresh session for a credential set. Its internal
// strategy (real browser, replayed login flow, ...) is opaque and
// substitutable.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (Session, error)
}

// Cache persists sessions by cache key with read-if-exists / full-overwrite
// semantics. Implementations must tolerate concurrent readers and
// last-write-wins concurrent writers.
type Cache interface {
	Get(ctx context.Context, key string) (Session, bool, error)
	Put(ctx context.Context, key string, sess Session) error
}

// StoreOptions configures a Store.
type StoreOptions struct {
	// Secret keys the credential hash. Must stay stable across restarts or
	// every persisted entry turns into a miss.
	Secret string
	// MemoryTTL bounds the in-process cache tier. Defaults to 15 minutes.
	MemoryTTL time.Duration
	Log       *slog.Logger
}

// Store hands out sessions, hitting an in-memory tier, the persisted cache
// and finally the authenticator, in that order.
type Store struct {
	authenticator Authenticator
	cache         Cache
	memory        *expirable.LRU[string, Session]
	secret        []byte
	log           *slog.Logger
}

func NewStore(authenticator Authenticator, cache Cache, opts StoreOptions) *Store {
	ttl := opts.MemoryTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		authenticator: authenticator,
		cache:         cache,
		memory:        expirable.NewLRU[string, Session](2048, nil, ttl),
		secret:        []byte(opts.Secret),
		log:           log.With("module", "session"),
	}
}

// CacheKey derives the deterministic, one-way cache key for a credential
// set. The plaintext credentials are not recoverable from it.
func (s *Store) CacheKey(creds models.Credentials) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s", creds.Email, creds.Password)
	return hex.EncodeToString(mac.Sum(nil))
}

// Acquire returns a session for the credentials, reusing a cached one when
// present. A cache hit is returned unchanged; a miss triggers one login and
// a full-overwrite write-back to both tiers.
func (s *Store) Acquire(ctx context.Context, creds models.Credentials) (Session, error) {
	key := s.CacheKey(creds)

	if sess, ok := s.memory.Get(key); ok {
		return sess, nil
	}

	sess, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("session cache read failed", "err", err)
	} else if ok && sess.Valid() {
		s.memory.Add(key, sess)
		return sess, nil
	}

	sess, err = s.authenticator.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrAuthentication) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if !sess.Valid() {
		return Session{}, fmt.Errorf("%w: login produced an incomplete cookie set", ErrAuthentication)
	}

	if err := s.cache.Put(ctx, key, sess); err != nil {
		// a failed write-back costs a future login, not this call
		s.log.Warn("session cache write failed", "err", err)
	}
	s.memory.Add(key, sess)
	return sess, nil
}
