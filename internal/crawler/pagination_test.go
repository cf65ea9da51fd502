package crawler

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/session"
	"linkedin-scraper/internal/transport"
)

// fakeTransport replays canned responses and records every request it sees.
type fakeTransport struct {
	requests  []transport.Request
	responses []func() (*transport.Response, error)
}

func (f *fakeTransport) Send(_ context.Context, req transport.Request) (*transport.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return &transport.Response{StatusCode: 200, Body: []byte(`{}`)}, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next()
}

func okBody(body string) func() (*transport.Response, error) {
	return func() (*transport.Response, error) {
		return &transport.Response{StatusCode: 200, Body: []byte(body)}, nil
	}
}

func failWith(err error) func() (*transport.Response, error) {
	return func() (*transport.Response, error) { return nil, err }
}

func testSession() session.Session {
	return session.Session{Cookies: map[string]string{
		"li_at":      "auth",
		"JSESSIONID": `"csrf-value"`,
	}}
}

func TestCursorRoundTrip(t *testing.T) {
	for _, page := range []int{0, 1, 7, 40, 12345} {
		decoded, err := DecodeCursor(EncodeCursor(page))
		require.NoError(t, err)
		require.Equal(t, page, decoded)
	}
}

func TestDecodeCursorEmptyMeansFirstPage(t *testing.T) {
	page, err := DecodeCursor("")
	require.NoError(t, err)
	require.Zero(t, page)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not base64 at all!!",
		base64.URLEncoding.EncodeToString([]byte("elephant")),
		base64.URLEncoding.EncodeToString([]byte("-3")),
	}
	for _, cursor := range cases {
		_, err := DecodeCursor(cursor)
		require.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", cursor)
	}
}

func TestListPageRequestShape(t *testing.T) {
	ft := &fakeTransport{responses: []func() (*transport.Response, error){
		okBody(`{"elements": [
			{"connectedMemberResolutionResult": {"publicIdentifier": "alice"}},
			{"connectedMemberResolutionResult": {"publicIdentifier": "bob"}}
		]}`),
	}}
	ps := NewPaginationService(ft, RetryPolicy{Attempts: 1}, nil)

	ids, err := ps.ListPage(context.Background(), testSession(), 3)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, ids)

	require.Len(t, ft.requests, 1)
	req := ft.requests[0]
	require.Equal(t, connectionsURL, req.URL)
	require.Equal(t, "120", req.Params["start"])
	require.Equal(t, "40", req.Params["count"])
	require.Equal(t, "search", req.Params["q"])
	require.Equal(t, decorationID, req.Params["decorationId"])
	require.Equal(t, "csrf-value", req.Headers["csrf-token"])
	require.Equal(t, "auth", req.Cookies["li_at"])
}

func TestListPageRetriesUntilSuccess(t *testing.T) {
	ft := &fakeTransport{responses: []func() (*transport.Response, error){
		failWith(&transport.Error{StatusCode: 500, Err: errors.New("boom")}),
		failWith(&transport.Error{Err: errors.New("reset")}),
		okBody(`{"elements": [{"connectedMemberResolutionResult": {"publicIdentifier": "alice"}}]}`),
	}}
	ps := NewPaginationService(ft, RetryPolicy{Attempts: 5}, nil)

	ids, err := ps.ListPage(context.Background(), testSession(), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, ids)
	require.Len(t, ft.requests, 3)
}

func TestListPageExhaustsRetryBudget(t *testing.T) {
	cause := &transport.Error{StatusCode: 429, Err: errors.New("throttled")}
	ft := &fakeTransport{responses: []func() (*transport.Response, error){
		failWith(cause), failWith(cause), failWith(cause),
	}}
	ps := NewPaginationService(ft, RetryPolicy{Attempts: 3}, nil)

	_, err := ps.ListPage(context.Background(), testSession(), 0)
	require.Error(t, err)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, 429, terr.StatusCode)
	require.Len(t, ft.requests, 3)
}

func TestListPageMalformedBody(t *testing.T) {
	ft := &fakeTransport{responses: []func() (*transport.Response, error){
		okBody(`<html>captcha</html>`),
	}}
	ps := NewPaginationService(ft, RetryPolicy{Attempts: 1}, nil)

	_, err := ps.ListPage(context.Background(), testSession(), 0)
	require.ErrorIs(t, err, transport.ErrInvalidResponse)
}

func TestListPageEmptyListing(t *testing.T) {
	ft := &fakeTransport{responses: []func() (*transport.Response, error){
		okBody(`{"elements": []}`),
	}}
	ps := NewPaginationService(ft, RetryPolicy{Attempts: 1}, nil)

	ids, err := ps.ListPage(context.Background(), testSession(), 9)
	require.NoError(t, err)
	require.Empty(t, ids)
	require.Equal(t, "360", ft.requests[0].Params["start"])
}
