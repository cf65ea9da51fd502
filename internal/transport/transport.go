// Package transport issues single HTTP requests against the target site with
// identity rotation and a short inner retry. It knows nothing about the
// shapes of the data it carries.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrInvalidResponse is returned by Response.JSON when the body is not
// valid JSON.
var ErrInvalidResponse = errors.New("response body is not valid JSON")

// Error is a transport failure: a network error or an HTTP status >= 400
// that survived the inner retry. StatusCode is 0 for pure network errors.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Request describes one outgoing HTTP call.
type Request struct {
	Method  string
	URL     string
	Params  map[string]string
	Headers map[string]string
	Cookies map[string]string
	Body    []byte
}

// Response exposes the parts of an upstream reply the pipeline consumes.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Cookies    []*http.Cookie
}

// JSON decodes the body into a generic map.
func (r *Response) JSON() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(r.Body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// Options configures a Client.
type Options struct {
	// Timeout bounds each individual request, retries included separately.
	Timeout time.Duration
	// Attempts is the total number of tries per Send call (>= 1).
	Attempts int
	// Identities overrides the built-in identity pool.
	Identities []Identity
}

// Client sends requests through a shared resty client. Safe for concurrent
// use; the identity draw is per call.
type Client struct {
	http       *resty.Client
	identities []Identity
}

// NewClient creates a transport client. All pipeline requests are read-only
// GETs, so the inner retry fires blindly on network errors and any status
// >= 400 without deduplication concerns.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Attempts < 1 {
		opts.Attempts = 3
	}
	identities := opts.Identities
	if len(identities) == 0 {
		identities = DefaultIdentities()
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	client.SetRetryCount(opts.Attempts - 1)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetRetryMaxWaitTime(500 * time.Millisecond)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err != nil || res.StatusCode() >= 400
	})

	return &Client{http: client, identities: identities}
}

// Send executes one request under a freshly drawn identity and returns the
// response, or a *Error once the inner retry budget is exhausted.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	id := pick(c.identities)

	r := c.http.R().SetContext(ctx)
	r.SetHeaders(req.Headers)
	r.SetHeader("user-agent", id.UserAgent)
	r.SetHeader("sec-ch-ua", id.SecChUA)
	r.SetHeader("sec-ch-ua-platform", id.Platform)
	r.SetHeader("sec-ch-ua-mobile", "?0")

	for name, value := range req.Cookies {
		r.SetCookie(&http.Cookie{Name: name, Value: value})
	}
	if len(req.Params) > 0 {
		r.SetQueryParams(req.Params)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	res, err := r.Execute(method, req.URL)
	if err != nil {
		return nil, &Error{Err: err}
	}
	if res.StatusCode() >= 400 {
		return nil, &Error{
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("%s %s: %s", method, req.URL, res.Status()),
		}
	}

	return &Response{
		StatusCode: res.StatusCode(),
		Headers:    res.Header(),
		Body:       res.Body(),
		Cookies:    res.Cookies(),
	}, nil
}
