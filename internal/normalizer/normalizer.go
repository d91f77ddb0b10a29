// Package normalizer maps raw feed entries into uniform headline
// records.
package normalizer

import (
	"sort"
	"strings"
	"time"

	"newshound/internal/models"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// ISO8601 is the timestamp layout used for normalized fields. Unlike
// RFC3339 it renders UTC as "+00:00" rather than "Z".
const ISO8601 = "2006-01-02T15:04:05-07:00"

// Normalizer converts feed entries into headline records. The scrape
// timestamp is fixed at construction so every record of a run carries
// the same value.
type Normalizer struct {
	scrapedAt string
}

// New creates a normalizer stamping records with the given scrape
// time.
func New(scrapedAt time.Time) *Normalizer {
	return &Normalizer{scrapedAt: scrapedAt.Format(ISO8601)}
}

// Normalize maps one raw entry plus its source label into a headline
// record. Missing fields become empty strings; an unparseable
// published date leaves PublishedISO empty and never fails.
func (n *Normalizer) Normalize(source string, item *gofeed.Item) models.Headline {
	raw := strings.TrimSpace(item.Published)
	if raw == "" {
		raw = strings.TrimSpace(item.Updated)
	}

	published := ""
	if t, ok := parseTime(item, raw); ok {
		published = t.Format(ISO8601)
	}

	return models.Headline{
		Source:       source,
		Title:        strings.TrimSpace(item.Title),
		Link:         strings.TrimSpace(item.Link),
		Published:    raw,
		PublishedISO: published,
		ScrapedAt:    n.scrapedAt,
	}
}

// NormalizeAll maps a source's entries in order.
func (n *Normalizer) NormalizeAll(source string, items []*gofeed.Item) []models.Headline {
	records := make([]models.Headline, 0, len(items))
	for _, item := range items {
		records = append(records, n.Normalize(source, item))
	}

	return records
}

// parseTime resolves the entry's published time: the feed parser's
// pre-parsed value when available, otherwise a best-effort parse of
// the raw string.
func parseTime(item *gofeed.Item, raw string) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}

	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed, true
	}

	if raw == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Dedupe removes records sharing a dedupe key (link, falling back to
// title), keeping the first occurrence. Records with neither are
// dropped.
func Dedupe(records []models.Headline) []models.Headline {
	seen := make(map[string]bool, len(records))
	out := make([]models.Headline, 0, len(records))

	for _, r := range records {
		key := strings.TrimSpace(r.Key())
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, r)
	}

	return out
}

// GlobalTop keeps the n newest dated records across all sources.
// Records without a normalized published time are excluded from the
// ranking, matching the per-run global mode.
func GlobalTop(records []models.Headline, n int) []models.Headline {
	type dated struct {
		record models.Headline
		at     time.Time
	}

	pool := make([]dated, 0, len(records))

	for _, r := range records {
		if r.PublishedISO == "" {
			continue
		}

		t, err := time.Parse(ISO8601, r.PublishedISO)
		if err != nil {
			continue
		}

		pool = append(pool, dated{record: r, at: t})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].at.After(pool[j].at)
	})

	if len(pool) > n {
		pool = pool[:n]
	}

	out := make([]models.Headline, 0, len(pool))
	for _, d := range pool {
		out = append(out, d.record)
	}

	return out
}
