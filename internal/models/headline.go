// Package models defines data structures shared by the scraper pipeline.
package models

// Headline is the normalized representation of one feed entry. A
// headline is immutable once constructed: the pipeline only ever
// creates, reads, and persists them.
type Headline struct {
	// Source is the configured name of the feed the entry came from.
	Source string
	// Title is the headline text as provided by the feed.
	Title string
	// Link is the article URL.
	Link string
	// Published is the raw published timestamp string from the feed,
	// possibly empty.
	Published string
	// PublishedISO is the normalized ISO-8601 form of Published, or
	// empty when the raw value could not be parsed.
	PublishedISO string
	// ScrapedAt is the ISO-8601 retrieval timestamp, stamped once per
	// run.
	ScrapedAt string
}

// Columns is the canonical column order used by every tabular sink.
func Columns() []string {
	return []string{"source", "title", "link", "published", "published_dt_iso", "scraped_at"}
}

// Row projects the headline into the canonical column order.
func (h Headline) Row() []string {
	return []string{h.Source, h.Title, h.Link, h.Published, h.PublishedISO, h.ScrapedAt}
}

// Key returns the dedupe key for the headline: the link when present,
// otherwise the title. An empty key marks the record as unusable.
func (h Headline) Key() string {
	if h.Link != "" {
		return h.Link
	}

	return h.Title
}
