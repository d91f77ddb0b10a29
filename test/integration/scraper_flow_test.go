package integration

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newshound/internal/config"
	"newshound/internal/feed"
	"newshound/internal/logger"
	"newshound/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

// Helper to build an RSS 2.0 document with the given item titles.
func rssBody(t *testing.T, titles ...string) string {
	t.Helper()

	var items strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&items, `
    <item>
      <title>%s</title>
      <link>https://example.com/%s/%d</link>
      <pubDate>Mon, 02 Jan 2024 10:0%d:00 GMT</pubDate>
    </item>`, title, strings.ReplaceAll(title, " ", "-"), i+1, i)
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Integration Feed</title>
    <link>https://example.com</link>
    <description>test</description>%s
  </channel>
</rss>`, items.String())
}

func serveFeed(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
}

// Config pointing two sources at the given URLs, with outputs in a
// temp dir.
func testConfig(t *testing.T, urlA, urlB string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Scraper.Sources = []config.SourceConfig{
		{Name: "Source A", URL: urlA, Enabled: true},
		{Name: "Source B", URL: urlB, Enabled: true},
	}
	cfg.Scraper.Output.CSVPath = filepath.Join(dir, "headlines.csv")
	cfg.Scraper.Output.XLSXPath = filepath.Join(dir, "headlines.xlsx")
	cfg.Scraper.Logging.Level = "error"

	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read csv: %v", err)
	}

	return rows
}

func readXLSX(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}

	return rows
}

func TestScraperFlow_PerSource(t *testing.T) {
	// Source A has more entries than the per-source limit; source B
	// fewer.
	serverA := serveFeed(rssBody(t, "a one", "a two", "a three", "a four", "a five"))
	defer serverA.Close()

	serverB := serveFeed(rssBody(t, "b one", "b two"))
	defer serverB.Close()

	cfg := testConfig(t, serverA.URL, serverB.URL)

	if err := pipeline.Run(cfg, logger.NewLogger("error")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := readCSV(t, cfg.Scraper.Output.CSVPath)

	// Header + 4 from A + 2 from B.
	if len(rows) != 7 {
		t.Fatalf("Expected 7 csv rows, got %d", len(rows))
	}

	// All of source A's records precede source B's, each in feed
	// order.
	wantTitles := []string{"a one", "a two", "a three", "a four", "b one", "b two"}
	for i, title := range wantTitles {
		row := rows[i+1]
		if row[1] != title {
			t.Errorf("Row %d: title = %q, want %q", i+1, row[1], title)
		}

		wantSource := "Source A"
		if i >= 4 {
			wantSource = "Source B"
		}

		if row[0] != wantSource {
			t.Errorf("Row %d: source = %q, want %q", i+1, row[0], wantSource)
		}
	}

	// Both sinks agree row for row.
	xlsxRows := readXLSX(t, cfg.Scraper.Output.XLSXPath, cfg.Scraper.Output.SheetName)
	if len(xlsxRows) != len(rows) {
		t.Fatalf("Row count mismatch: csv %d, xlsx %d", len(rows), len(xlsxRows))
	}

	for i := range rows {
		for j := range rows[i] {
			xlsxVal := ""
			if j < len(xlsxRows[i]) {
				xlsxVal = xlsxRows[i][j]
			}

			if rows[i][j] != xlsxVal {
				t.Errorf("Row %d col %d mismatch: csv %q, xlsx %q", i, j, rows[i][j], xlsxVal)
			}
		}
	}
}

func TestScraperFlow_GlobalTop(t *testing.T) {
	serverA := serveFeed(rssBody(t, "a one", "a two", "a three"))
	defer serverA.Close()

	serverB := serveFeed(rssBody(t, "b one", "b two", "b three"))
	defer serverB.Close()

	cfg := testConfig(t, serverA.URL, serverB.URL)
	cfg.Scraper.Mode = config.ModeGlobalTop
	cfg.Scraper.Limits.GlobalTop = 4

	if err := pipeline.Run(cfg, logger.NewLogger("error")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := readCSV(t, cfg.Scraper.Output.CSVPath)
	if len(rows) != 5 {
		t.Fatalf("Expected header + 4 rows in global-top mode, got %d", len(rows))
	}
}

func TestScraperFlow_UnreachableSourceAbortsRun(t *testing.T) {
	serverA := serveFeed(rssBody(t, "a one"))
	defer serverA.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	cfg := testConfig(t, serverA.URL, dead.URL)

	err := pipeline.Run(cfg, logger.NewLogger("error"))
	if !errors.Is(err, feed.ErrSourceExhausted) {
		t.Fatalf("Expected ErrSourceExhausted to propagate, got %v", err)
	}

	// The run aborted before the output stage.
	if _, statErr := os.Stat(cfg.Scraper.Output.CSVPath); !os.IsNotExist(statErr) {
		t.Error("Expected no csv output after aborted run")
	}
}

func TestScraperFlow_WriteFailureIsReported(t *testing.T) {
	serverA := serveFeed(rssBody(t, "a one"))
	defer serverA.Close()

	serverB := serveFeed(rssBody(t, "b one"))
	defer serverB.Close()

	cfg := testConfig(t, serverA.URL, serverB.URL)
	cfg.Scraper.Output.CSVPath = filepath.Join(t.TempDir(), "missing", "headlines.csv")

	err := pipeline.Run(cfg, logger.NewLogger("error"))
	if err == nil {
		t.Fatal("Expected error when a sink cannot be written")
	}

	// The other sink was still attempted and written.
	rows := readXLSX(t, cfg.Scraper.Output.XLSXPath, cfg.Scraper.Output.SheetName)
	if len(rows) != 3 {
		t.Fatalf("Expected xlsx written despite csv failure, got %d rows", len(rows))
	}
}

func TestScraperFlow_AllSourcesEmpty(t *testing.T) {
	serverA := serveFeed(rssBody(t))
	defer serverA.Close()

	serverB := serveFeed(rssBody(t))
	defer serverB.Close()

	cfg := testConfig(t, serverA.URL, serverB.URL)

	if err := pipeline.Run(cfg, logger.NewLogger("error")); err != nil {
		t.Fatalf("Empty feeds must not fail the run, got: %v", err)
	}

	// No output files are written for an empty combined sequence.
	if _, statErr := os.Stat(cfg.Scraper.Output.CSVPath); !os.IsNotExist(statErr) {
		t.Error("Expected no csv output for an empty run")
	}
}
