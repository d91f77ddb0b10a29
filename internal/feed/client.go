package feed

import (
	"errors"
	"fmt"
	"strings"

	"newshound/internal/config"
	"newshound/internal/logger"

	"github.com/mmcdole/gofeed"
)

// ErrSourceExhausted indicates that none of a source's URLs yielded a
// parseable feed.
var ErrSourceExhausted = errors.New("no usable feed found for source")

// snippetLen bounds how much of an unparseable response is logged.
const snippetLen = 800

// Client fetches a source's feed, walking its fallback URLs until one
// parses.
type Client struct {
	fetcher *Fetcher
	parser  *gofeed.Parser
	log     *logger.Logger
}

// NewClient creates a feed client.
func NewClient(fetcher *Fetcher, log *logger.Logger) *Client {
	return &Client{
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

// FetchSource tries each URL of the source in order and returns up to
// limit entries, in feed-native order, from the first URL that yields
// a feed with entries.
//
// A URL whose response fails to fetch or parse is skipped in favor of
// the next fallback. A feed that parses cleanly but contains no
// entries also falls through to the next URL; if every URL parses
// empty, the source legitimately has nothing to report and a nil slice
// is returned without error. Only when no URL produces a parseable
// feed at all does FetchSource fail with ErrSourceExhausted.
func (c *Client) FetchSource(src config.SourceConfig, limit int) ([]*gofeed.Item, error) {
	parsedAny := false

	for _, url := range src.AllURLs() {
		c.log.Debug("trying feed url", "source", src.Name, "url", url)

		body, status, contentType, err := c.fetcher.FetchBody(url)
		if err != nil {
			c.log.Warn("feed fetch failed", "source", src.Name, "url", url, "error", err)

			continue
		}

		c.log.Debug("feed response", "source", src.Name, "status", status, "content_type", contentType, "bytes", len(body))

		if strings.TrimSpace(body) == "" {
			c.log.Warn("empty response body, moving to next fallback", "source", src.Name, "url", url)

			continue
		}

		parsed, err := c.parser.ParseString(body)
		if err != nil {
			c.log.Warn("feed parse failed", "source", src.Name, "url", url, "error", err, "snippet", snippet(body))

			continue
		}

		parsedAny = true

		if len(parsed.Items) == 0 {
			c.log.Debug("feed has no entries", "source", src.Name, "url", url)

			continue
		}

		items := parsed.Items
		if len(items) > limit {
			items = items[:limit]
		}

		return items, nil
	}

	if parsedAny {
		// Every URL parsed but none had entries: an empty feed, not a
		// failure.
		return nil, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrSourceExhausted, src.Name)
}

// snippet returns the head of a response body collapsed to one line,
// for parse-failure diagnostics.
func snippet(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	if len(s) > snippetLen {
		s = s[:snippetLen]
	}

	return s
}
