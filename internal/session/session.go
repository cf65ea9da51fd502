// Package session acquires and caches authenticated LinkedIn sessions.
package session

import "strings"

// cookie the anti-forgery token is derived from, and the cookie that marks
// an authenticated browser
const (
	csrfCookie = "JSESSIONID"
	authCookie = "li_at"
)

// Session is an authenticated cookie set. It is immutable once obtained:
// every request of one pipeline invocation shares it read-only.
type Session struct {
	Cookies map[string]string `json:"cookies"`
}

// CSRFToken returns the anti-forgery header value: the JSESSIONID cookie
// stripped of quotes and surrounding whitespace.
func (s Session) CSRFToken() string {
	return strings.TrimSpace(strings.ReplaceAll(s.Cookies[csrfCookie], `"`, ""))
}

// Valid reports whether the session carries everything the pipeline needs.
// A session is all-or-nothing: either the auth cookie and the anti-forgery
// token are both present, or acquisition has to be redone.
func (s Session) Valid() bool {
	return s.Cookies[authCookie] != "" && s.CSRFToken() != ""
}
