// Package crawler replays LinkedIn's internal Voyager endpoints over an
// authenticated session: the connections listing with its pagination cursor,
// and the per-profile view/contact pair.
package crawler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"linkedin-scraper/internal/session"
	"linkedin-scraper/internal/transport"
)

// pageSize is the upstream listing page size. It is part of the upstream
// contract, not a tunable.
const pageSize = 40

// ErrInvalidCursor is returned when a caller-supplied cursor does not decode
// to a non-negative page number.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Transport sends one HTTP request. Satisfied by transport.Client; tests
// substitute fakes.
type Transport interface {
	Send(ctx context.Context, req transport.Request) (*transport.Response, error)
}

// EncodeCursor encodes a page number into an opaque cursor
func EncodeCursor(page int) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(page)))
}

// DecodeCursor decodes a cursor back into a page number. An absent cursor
// means the first page.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	page, err := strconv.Atoi(string(raw))
	if err != nil || page < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return page, nil
}

// PaginationService fetches one listing page of connection identifiers
type PaginationService struct {
	transport Transport
	retry     RetryPolicy
	log       *slog.Logger
}

// NewPaginationService creates a new PaginationService instance
func NewPaginationService(t Transport, retry RetryPolicy, log *slog.Logger) *PaginationService {
	if log == nil {
		log = slog.Default()
	}
	return &PaginationService{
		transport: t,
		retry:     retry,
		log:       log.With("module", "pagination"),
	}
}

// ListPage returns the connection identifiers of one listing page, in
// upstream order. The offset is always pageSize * page.
func (ps *PaginationService) ListPage(ctx context.Context, sess session.Session, page int) ([]string, error) {
	var ids []string
	err := ps.retry.Do(ctx, func() error {
		res, err := ps.transport.Send(ctx, transport.Request{
			Method: "GET",
			URL:    connectionsURL,
			Params: map[string]string{
				"decorationId": decorationID,
				"count":        strconv.Itoa(pageSize),
				"q":            "search",
				"sortType":     sortType,
				"start":        strconv.Itoa(pageSize * page),
			},
			Headers: voyagerHeaders(sess),
			Cookies: sess.Cookies,
		})
		if err != nil {
			return err
		}
		data, err := res.JSON()
		if err != nil {
			return err
		}
		ids = NewParser(data).ConnectionIDs()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list connections page %d: %w", page, err)
	}

	ps.log.Debug("fetched listing page", "page", page, "identifiers", len(ids))
	return ids, nil
}
