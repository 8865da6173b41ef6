package redditads

import (
	"fmt"
	"net/url"
)

// Pagination is the envelope returned by list and report endpoints.
// An absent next_url marks the last page.
type Pagination struct {
	NextURL string `json:"next_url"`
}

// NextPageToken extracts the page.token parameter from the next-page URL.
// The API hands back a complete next-page URL, but requests are built
// locally against the configured base URL, so only the token is kept.
// An empty token means there are no more pages.
func NextPageToken(p Pagination) (string, error) {
	if p.NextURL == "" {
		return "", nil
	}
	u, err := url.Parse(p.NextURL)
	if err != nil {
		return "", fmt.Errorf("parse next_url: %w", err)
	}
	return u.Query().Get("page.token"), nil
}
