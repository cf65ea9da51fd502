package crawler

import (
	"fmt"

	"github.com/google/uuid"

	"linkedin-scraper/internal/session"
)

// Upstream contract constants. Values must be mirrored bit-exactly or the
// request is rejected; they carry no meaning inside the pipeline.
const (
	baseURL        = "https://www.linkedin.com"
	connectionsURL = baseURL + "/voyager/api/relationships/dash/connections"
	profileViewURL = baseURL + "/voyager/api/identity/profiles/%s/profileView"
	contactInfoURL = baseURL + "/voyager/api/identity/profiles/%s/profileContactInfo"

	decorationID = "com.linkedin.voyager.dash.deco.web.mynetwork.ConnectionListWithProfile-16"
	sortType     = "RECENTLY_ADDED"
)

// voyagerHeaders builds the header set for internal API requests, including
// the anti-forgery token copied from the session.
func voyagerHeaders(sess session.Session) map[string]string {
	return map[string]string{
		"accept":                    "application/json",
		"csrf-token":                sess.CSRFToken(),
		"x-li-lang":                 "en_US",
		"x-restli-protocol-version": "1.0.0",
		"x-li-page-instance":        fmt.Sprintf("urn:li:page:d_flagship3_profile_view_base;%s", uuid.New().String()),
		"referer":                   baseURL + "/feed/",
	}
}

// homepageHeaders builds the header set for plain page requests, used when
// resolving the logged-in user's own identifier.
func homepageHeaders() map[string]string {
	return map[string]string{
		"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language":           "en-US,en;q=0.9",
		"upgrade-insecure-requests": "1",
	}
}
