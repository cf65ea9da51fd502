// Package auth obtains fresh LinkedIn sessions by driving the real login
// form in a Chrome instance and harvesting the resulting cookie jar.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/session"
)

const loginURL = "https://www.linkedin.com/login"

// LoginService performs LinkedIn logins through a browser. It implements
// session.Authenticator.
type LoginService struct {
	browserManager *BrowserManager
	timeout        time.Duration
	log            *slog.Logger
}

// Options configures a LoginService.
type Options struct {
	Headless bool
	// Timeout bounds one complete login attempt, browser startup included.
	Timeout time.Duration
	Log     *slog.Logger
}

// NewLoginService creates a new LoginService instance
func NewLoginService(opts Options) *LoginService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &LoginService{
		browserManager: NewBrowserManager(opts.Headless),
		timeout:        timeout,
		log:            log.With("module", "auth"),
	}
}

// Login drives the LinkedIn login form and returns the harvested cookie set.
// Failures wrap session.ErrAuthentication.
func (ls *LoginService) Login(ctx context.Context, creds models.Credentials) (session.Session, error) {
	ls.log.Info("performing fresh login", "email", creds.Email)

	ctx, timeoutCancel := context.WithTimeout(ctx, ls.timeout)
	defer timeoutCancel()

	browserCtx, cancel, err := ls.browserManager.CreateBrowserContext(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", session.ErrAuthentication, err)
	}
	defer cancel()

	var cookies map[string]string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(loginURL),

		chromedp.WaitVisible(`#username`, chromedp.ByID),
		chromedp.Clear(`#username`, chromedp.ByID),
		chromedp.SendKeys(`#username`, creds.Email, chromedp.ByID),

		chromedp.WaitVisible(`#password`, chromedp.ByID),
		chromedp.Clear(`#password`, chromedp.ByID),
		chromedp.SendKeys(`#password`, creds.Password, chromedp.ByID),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),

		// the primary nav only renders once the feed is authenticated;
		// a challenge or rejected password keeps us on the guest layout
		// until the deadline fires
		chromedp.WaitVisible(`.global-nav__primary-link`, chromedp.ByQuery),

		chromedp.ActionFunc(func(ctx context.Context) error {
			raw, err := storage.GetCookies().Do(ctx)
			if err != nil {
				return err
			}
			cookies = make(map[string]string, len(raw))
			for _, c := range raw {
				cookies[c.Name] = c.Value
			}
			return nil
		}),
	)
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: login flow did not complete: %v", session.ErrAuthentication, err)
	}

	sess := session.Session{Cookies: cookies}
	if !sess.Valid() {
		return session.Session{}, fmt.Errorf("%w: login produced an incomplete cookie set", session.ErrAuthentication)
	}

	ls.log.Info("login succeeded", "email", creds.Email, "cookies", len(cookies))
	return sess, nil
}
