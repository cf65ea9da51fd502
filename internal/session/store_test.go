package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/models"
)

type fakeAuthenticator struct {
	calls int
	sess  Session
	err   error
}

func (f *fakeAuthenticator) Login(context.Context, models.Credentials) (Session, error) {
	f.calls++
	return f.sess, f.err
}

type fakeCache struct {
	entries map[string]Session
	getErr  error
	putErr  error
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]Session)}
}

func (f *fakeCache) Get(_ context.Context, key string) (Session, bool, error) {
	if f.getErr != nil {
		return Session{}, false, f.getErr
	}
	sess, ok := f.entries[key]
	return sess, ok, nil
}

func (f *fakeCache) Put(_ context.Context, key string, sess Session) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[key] = sess
	return nil
}

func validSession() Session {
	return Session{Cookies: map[string]string{"li_at": "auth", "JSESSIONID": `"csrf"`}}
}

func creds() models.Credentials {
	return models.Credentials{Email: "jane@example.com", Password: "hunter2"}
}

func TestAcquireLogsInOnColdCache(t *testing.T) {
	auth := &fakeAuthenticator{sess: validSession()}
	cache := newFakeCache()
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})

	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, 1, auth.calls)
	require.Equal(t, 1, cache.puts)
}

func TestAcquireReusesPersistedSession(t *testing.T) {
	auth := &fakeAuthenticator{err: errors.New("should not be called")}
	cache := newFakeCache()
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})
	cache.entries[store.CacheKey(creds())] = validSession()

	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Zero(t, auth.calls)
}

func TestAcquireMemoryTierSkipsPersistedCache(t *testing.T) {
	auth := &fakeAuthenticator{sess: validSession()}
	cache := newFakeCache()
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})

	_, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)

	// second call must come out of memory without touching either tier
	cache.getErr = errors.New("persisted tier unavailable")
	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, 1, auth.calls)
}

func TestAcquireInvalidCachedSessionTriggersLogin(t *testing.T) {
	auth := &fakeAuthenticator{sess: validSession()}
	cache := newFakeCache()
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})
	cache.entries[store.CacheKey(creds())] = Session{Cookies: map[string]string{"li_at": "auth"}}

	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, 1, auth.calls)
}

func TestAcquireCacheReadFailureFallsThroughToLogin(t *testing.T) {
	auth := &fakeAuthenticator{sess: validSession()}
	cache := newFakeCache()
	cache.getErr = errors.New("disk on fire")
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})

	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, 1, auth.calls)
}

func TestAcquireCacheWriteFailureStillReturnsSession(t *testing.T) {
	auth := &fakeAuthenticator{sess: validSession()}
	cache := newFakeCache()
	cache.putErr = errors.New("disk full")
	store := NewStore(auth, cache, StoreOptions{Secret: "s3cret"})

	sess, err := store.Acquire(context.Background(), creds())
	require.NoError(t, err)
	require.True(t, sess.Valid())
}

func TestAcquireWrapsLoginFailures(t *testing.T) {
	auth := &fakeAuthenticator{err: errors.New("login form changed")}
	store := NewStore(auth, newFakeCache(), StoreOptions{Secret: "s3cret"})

	_, err := store.Acquire(context.Background(), creds())
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestAcquireRejectsIncompleteLoginResult(t *testing.T) {
	auth := &fakeAuthenticator{sess: Session{Cookies: map[string]string{"li_at": "auth"}}}
	store := NewStore(auth, newFakeCache(), StoreOptions{Secret: "s3cret"})

	_, err := store.Acquire(context.Background(), creds())
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestCacheKeyIsDeterministicAndSecretBound(t *testing.T) {
	a := NewStore(&fakeAuthenticator{}, newFakeCache(), StoreOptions{Secret: "one"})
	b := NewStore(&fakeAuthenticator{}, newFakeCache(), StoreOptions{Secret: "two"})

	require.Equal(t, a.CacheKey(creds()), a.CacheKey(creds()))
	require.NotEqual(t, a.CacheKey(creds()), b.CacheKey(creds()))
	require.NotContains(t, a.CacheKey(creds()), "jane")
	require.NotContains(t, a.CacheKey(creds()), "hunter2")
}

func TestCSRFTokenStripsQuotesAndWhitespace(t *testing.T) {
	sess := Session{Cookies: map[string]string{"JSESSIONID": ` "ajax:12345" `}}
	require.Equal(t, "ajax:12345", sess.CSRFToken())
}

func TestValidRequiresBothCookies(t *testing.T) {
	require.True(t, validSession().Valid())
	require.False(t, Session{Cookies: map[string]string{"li_at": "auth"}}.Valid())
	require.False(t, Session{Cookies: map[string]string{"JSESSIONID": `"csrf"`}}.Valid())
	require.False(t, Session{}.Valid())
}
