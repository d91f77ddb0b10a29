// Package pipeline runs the scraper end to end: fetch every enabled
// source, normalize, dedupe, print the summary, and write both sinks.
package pipeline

import (
	"fmt"
	"time"

	"newshound/internal/config"
	"newshound/internal/feed"
	"newshound/internal/logger"
	"newshound/internal/models"
	"newshound/internal/normalizer"
	"newshound/internal/report"
	"newshound/internal/sink"
)

// Run executes one scrape. It returns an error when any source is
// exhausted or when an output sink fails, so the caller can exit
// non-zero.
func Run(cfg *config.Config, log *logger.Logger) error {
	fmt.Printf("🚀 Mode: %s\n", cfg.Scraper.Mode)

	client := feed.NewClient(feed.NewFetcher(&cfg.Scraper.Fetch), log)
	norm := normalizer.New(time.Now())

	// In global-top mode each source contributes a larger pool before
	// ranking.
	limit := cfg.Scraper.Limits.PerSource
	if cfg.Scraper.Mode == config.ModeGlobalTop {
		limit = cfg.Scraper.Limits.GlobalPool
	}

	sources := cfg.GetEnabledSources()

	var records []models.Headline

	for i, src := range sources {
		fmt.Printf("📡 Source %d/%d: %s\n", i+1, len(sources), src.Name)

		items, err := client.FetchSource(src, limit)
		if err != nil {
			return fmt.Errorf("fetch failed for %s: %w", src.Name, err)
		}

		fmt.Printf("   fetched %d item(s)\n", len(items))

		records = append(records, norm.NormalizeAll(src.Name, items)...)
	}

	records = normalizer.Dedupe(records)

	if cfg.Scraper.Mode == config.ModeGlobalTop {
		records = normalizer.GlobalTop(records, cfg.Scraper.Limits.GlobalTop)
	}

	if len(records) == 0 {
		fmt.Println("No headlines fetched from any source.")

		return nil
	}

	fmt.Println()
	fmt.Println(report.RenderTop(records, report.TopCount))

	csvSink := sink.NewCSVSink(cfg.Scraper.Output.CSVPath)
	xlsxSink := sink.NewXLSXSink(cfg.Scraper.Output.XLSXPath, cfg.Scraper.Output.SheetName)

	if err := sink.WriteAll(records, csvSink, xlsxSink); err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	fmt.Printf("💾 Saved %d rows to %s and %s\n", len(records), csvSink.Path(), xlsxSink.Path())

	return nil
}
