package transport

import "math/rand"

// Identity is one outward browser fingerprint: the user-agent plus the
// client-hint headers that have to agree with it.
type Identity struct {
	UserAgent string
	SecChUA   string
	Platform  string
}

// DefaultIdentities returns the built-in Chrome identity pool. Versions are
// kept a little behind current so the fleet looks like ordinary users who
// haven't all updated on the same day.
func DefaultIdentities() []Identity {
	return []Identity{
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			SecChUA:   `"Google Chrome";v="119", "Chromium";v="119", "Not?A_Brand";v="24"`,
			Platform:  `"Windows"`,
		},
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
			SecChUA:   `"Chromium";v="118", "Google Chrome";v="118", "Not=A?Brand";v="99"`,
			Platform:  `"Windows"`,
		},
		{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			SecChUA:   `"Google Chrome";v="119", "Chromium";v="119", "Not?A_Brand";v="24"`,
			Platform:  `"macOS"`,
		},
		{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
			SecChUA:   `"Google Chrome";v="117", "Chromium";v="117", "Not;A=Brand";v="8"`,
			Platform:  `"macOS"`,
		},
		{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			SecChUA:   `"Google Chrome";v="119", "Chromium";v="119", "Not?A_Brand";v="24"`,
			Platform:  `"Linux"`,
		},
		{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36",
			SecChUA:   `"Chromium";v="116", "Not)A;Brand";v="24", "Google Chrome";v="116"`,
			Platform:  `"Linux"`,
		},
	}
}

// pick draws one identity at random. Each call draws independently; there is
// no rotation state shared between concurrent callers.
func pick(identities []Identity) Identity {
	return identities[rand.Intn(len(identities))]
}
