// Package orchestrator ties session acquisition, pagination and profile
// fetching into the two operations the front door exposes.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/crawler"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/session"
)

// SessionSource hands out an authenticated session for a credential set
type SessionSource interface {
	Acquire(ctx context.Context, creds models.Credentials) (session.Session, error)
}

// Lister fetches one page of connection identifiers
type Lister interface {
	ListPage(ctx context.Context, sess session.Session, page int) ([]string, error)
}

// Fetcher builds complete profile records
type Fetcher interface {
	FetchProfile(ctx context.Context, sess session.Session, id string) (models.ProfileRecord, error)
	FetchOwnProfile(ctx context.Context, sess session.Session) (models.ProfileRecord, error)
}

// Orchestrator runs the scraping pipeline. The concurrency bound is shared
// by all profile fetches of one page; it exists to stay under upstream's
// rate-limit radar, not for local resource scarcity.
type Orchestrator struct {
	sessions    SessionSource
	lister      Lister
	fetcher     Fetcher
	concurrency int64
	log         *slog.Logger
}

// New creates a new Orchestrator instance
func New(sessions SessionSource, lister Lister, fetcher Fetcher, concurrency int64, log *slog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 6
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		sessions:    sessions,
		lister:      lister,
		fetcher:     fetcher,
		concurrency: concurrency,
		log:         log.With("module", "orchestrator"),
	}
}

// GetProfile returns the logged-in user's own profile record
func (o *Orchestrator) GetProfile(ctx context.Context, creds models.Credentials) (models.ProfileRecord, error) {
	sess, err := o.sessions.Acquire(ctx, creds)
	if err != nil {
		return models.ProfileRecord{}, &Error{Stage: StageSession, Err: err}
	}

	record, err := o.fetcher.FetchOwnProfile(ctx, sess)
	if err != nil {
		return models.ProfileRecord{}, &Error{Stage: StageFetch, Err: err}
	}
	return record, nil
}

// GetConnections returns one page of connection profile records plus the
// cursor for the next page. The cursor always advances, even past the last
// non-empty page; callers detect end-of-data by an empty page.
func (o *Orchestrator) GetConnections(ctx context.Context, creds models.Credentials, cursor string) (models.Page, error) {
	sess, err := o.sessions.Acquire(ctx, creds)
	if err != nil {
		return models.Page{}, &Error{Stage: StageSession, Err: err}
	}

	page, err := crawler.DecodeCursor(cursor)
	if err != nil {
		return models.Page{}, &Error{Stage: StageCursor, Err: err}
	}

	ids, err := o.lister.ListPage(ctx, sess, page)
	if err != nil {
		return models.Page{}, &Error{Stage: StageListing, Err: err}
	}

	records, err := o.fetchAll(ctx, sess, ids)
	if err != nil {
		return models.Page{}, err
	}

	o.log.Info("connections page complete", "page", page, "profiles", len(records))
	return models.Page{
		Profiles:     records,
		PaginationID: crawler.EncodeCursor(page + 1),
	}, nil
}

// fetchAll fans out one fetch per identifier under the shared concurrency
// bound. Results land in indexed slots so the output order matches the
// listing order, never completion order. The first fetch to exhaust its
// retry budget cancels the rest and fails the page.
func (o *Orchestrator) fetchAll(ctx context.Context, sess session.Session, ids []string) ([]models.ProfileRecord, error) {
	records := make([]models.ProfileRecord, len(ids))
	sem := semaphore.NewWeighted(o.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			record, err := o.fetcher.FetchProfile(gctx, sess, id)
			if err != nil {
				return &Error{Stage: StageFetch, Identifier: id, Err: err}
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &Error{Stage: StageFetch, Err: err}
	}
	return records, nil
}
