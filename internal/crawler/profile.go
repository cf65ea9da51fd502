package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/session"
	"linkedin-scraper/internal/transport"
)

// ErrIdentifierNotFound is returned when the logged-in user's own public
// identifier cannot be located in the landing page.
var ErrIdentifierNotFound = errors.New("could not resolve own public identifier")

var publicIdentifierRe = regexp.MustCompile(`"publicIdentifier":"([^"]+)"`)

// ProfileService builds one complete profile record from the two requests a
// profile needs: the profile view and the contact info.
type ProfileService struct {
	transport Transport
	retry     RetryPolicy
	log       *slog.Logger
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(t Transport, retry RetryPolicy, log *slog.Logger) *ProfileService {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileService{
		transport: t,
		retry:     retry,
		log:       log.With("module", "profile"),
	}
}

// FetchProfile returns the merged record for one public identifier. The
// profile view and contact info requests carry independent retry budgets.
// A contact info failure surviving its budget degrades the record to absent
// contact fields rather than discarding the base profile.
func (s *ProfileService) FetchProfile(ctx context.Context, sess session.Session, id string) (models.ProfileRecord, error) {
	var record models.ProfileRecord
	err := s.retry.Do(ctx, func() error {
		data, err := s.getJSON(ctx, sess, fmt.Sprintf(profileViewURL, id))
		if err != nil {
			return err
		}
		record = NewParser(data).ProfileRecord()
		return nil
	})
	if err != nil {
		return models.ProfileRecord{}, fmt.Errorf("fetch profile %q: %w", id, err)
	}

	var contact models.Contact
	err = s.retry.Do(ctx, func() error {
		data, err := s.getJSON(ctx, sess, fmt.Sprintf(contactInfoURL, id))
		if err != nil {
			return err
		}
		contact = NewParser(data).ContactDetails()
		return nil
	})
	if err != nil {
		s.log.Warn("contact info unavailable, keeping base profile", "id", id, "err", err)
	} else {
		// merge by union: contact fields only add, never overwrite
		record.Contact = contact
	}

	return record, nil
}

// FetchOwnProfile resolves the logged-in user's identifier from the landing
// page and fetches that profile.
func (s *ProfileService) FetchOwnProfile(ctx context.Context, sess session.Session) (models.ProfileRecord, error) {
	var id string
	err := s.retry.Do(ctx, func() error {
		res, err := s.transport.Send(ctx, transport.Request{
			Method:  "GET",
			URL:     baseURL,
			Headers: homepageHeaders(),
			Cookies: sess.Cookies,
		})
		if err != nil {
			return err
		}
		m := publicIdentifierRe.FindSubmatch(res.Body)
		if m == nil {
			return ErrIdentifierNotFound
		}
		id = string(m[1])
		return nil
	})
	if err != nil {
		return models.ProfileRecord{}, fmt.Errorf("resolve own identifier: %w", err)
	}

	s.log.Debug("resolved own identifier", "id", id)
	return s.FetchProfile(ctx, sess, id)
}

func (s *ProfileService) getJSON(ctx context.Context, sess session.Session, url string) (map[string]interface{}, error) {
	res, err := s.transport.Send(ctx, transport.Request{
		Method:  "GET",
		URL:     url,
		Headers: voyagerHeaders(sess),
		Cookies: sess.Cookies,
	})
	if err != nil {
		return nil, err
	}
	return res.JSON()
}
