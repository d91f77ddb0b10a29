// Package feed retrieves and parses RSS feeds.
package feed

import (
	"fmt"
	"io"
	"net/http"

	"newshound/internal/config"
)

// Fetcher performs HTTP retrieval of feed documents.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher with the configured timeout and user
// agent.
func NewFetcher(cfg *config.FetchConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		userAgent: cfg.UserAgent,
	}
}

// FetchBody retrieves the raw response body for a URL and returns
// (body, statusCode, contentType, error). Non-2xx responses are not an
// error here: some feed endpoints serve usable XML alongside odd
// status codes, so the caller decides based on whether the body
// parses.
func (f *Fetcher) FetchBody(url string) (string, int, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, resp.Header.Get("Content-Type"), fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), resp.StatusCode, resp.Header.Get("Content-Type"), nil
}
