package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendSetsIdentityParamsAndCookies(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(Options{Attempts: 1, Identities: []Identity{{
		UserAgent: "test-agent",
		SecChUA:   `"Chromium";v="125"`,
		Platform:  `"Linux"`,
	}}})

	res, err := client.Send(context.Background(), Request{
		URL:     srv.URL,
		Params:  map[string]string{"q": "search", "start": "40"},
		Headers: map[string]string{"csrf-token": "tok"},
		Cookies: map[string]string{"li_at": "auth"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.Equal(t, "test-agent", got.Header.Get("user-agent"))
	require.Equal(t, `"Chromium";v="125"`, got.Header.Get("sec-ch-ua"))
	require.Equal(t, "tok", got.Header.Get("csrf-token"))
	require.Equal(t, "search", got.URL.Query().Get("q"))
	require.Equal(t, "40", got.URL.Query().Get("start"))
	cookie, err := got.Cookie("li_at")
	require.NoError(t, err)
	require.Equal(t, "auth", cookie.Value)
}

func TestSendRetriesAbsorbTransientServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(Options{Attempts: 3})

	res, err := client.Send(context.Background(), Request{URL: srv.URL})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestSendReturnsErrorAfterBudgetExhausted(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Options{Attempts: 2})

	_, err := client.Send(context.Background(), Request{URL: srv.URL})
	require.Error(t, err)

	var terr *Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, http.StatusTooManyRequests, terr.StatusCode)
	require.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestSendNetworkErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(Options{Attempts: 1, Timeout: time.Second})

	_, err := client.Send(context.Background(), Request{URL: srv.URL})
	var terr *Error
	require.ErrorAs(t, err, &terr)
	require.Zero(t, terr.StatusCode)
}

func TestResponseJSON(t *testing.T) {
	res := &Response{Body: []byte(`{"elements": [1, 2]}`)}
	data, err := res.JSON()
	require.NoError(t, err)
	require.Contains(t, data, "elements")

	res = &Response{Body: []byte(`<html>captcha</html>`)}
	_, err = res.JSON()
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestIdentityRotationDrawsFromPool(t *testing.T) {
	seen := make(map[string]bool)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("user-agent")] = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(Options{Attempts: 1})
	for i := 0; i < 50; i++ {
		_, err := client.Send(context.Background(), Request{URL: srv.URL})
		require.NoError(t, err)
	}

	for ua := range seen {
		require.NotEmpty(t, ua)
	}
}
