// Package main provides the news headlines scraper: it fetches the
// configured RSS sources, normalizes the entries, prints a top-2
// summary, and writes the records to CSV and XLSX files.
package main

import (
	"flag"
	"fmt"
	"os"

	"newshound/internal/config"
	"newshound/internal/logger"
	"newshound/internal/pipeline"
)

// defaultConfigPath is used when no -config flag is given and the file
// exists in the working directory.
const defaultConfigPath = "configs/scraper.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	mode := flag.String("mode", "", "Scrape mode: per_source or global_top (overrides config)")
	csvOut := flag.String("csv", "", "CSV output path (overrides config)")
	xlsxOut := flag.String("xlsx", "", "XLSX output path (overrides config)")
	limit := flag.Int("limit", 0, "Headlines per source (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	applyOverrides(cfg, *mode, *csvOut, *xlsxOut, *limit)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Scraper.Logging.Level)

	if err := pipeline.Run(cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", path)

		return config.LoadConfig(path)
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		fmt.Printf("⚙️  Loading default configuration: %s\n", defaultConfigPath)

		return config.LoadConfig(defaultConfigPath)
	}

	fmt.Println("⚙️  Using built-in sources (TechCrunch, Economic Times - Top Stories)")

	return config.Default(), nil
}

// applyOverrides maps CLI flags onto the loaded configuration.
func applyOverrides(cfg *config.Config, mode, csvOut, xlsxOut string, limit int) {
	if mode != "" {
		cfg.Scraper.Mode = mode
	}

	if csvOut != "" {
		cfg.Scraper.Output.CSVPath = csvOut
	}

	if xlsxOut != "" {
		cfg.Scraper.Output.XLSXPath = xlsxOut
	}

	if limit > 0 {
		cfg.Scraper.Limits.PerSource = limit
	}
}

func printUsage() {
	fmt.Print(`News headlines scraper

Fetches headlines from the configured RSS sources, prints a top-2
summary, and writes the full set to a CSV file and an XLSX workbook.

Usage:
  scraper [flags]

Flags:
  -config string   Path to YAML configuration file
  -mode string     per_source (N newest per source) or global_top (N newest overall)
  -csv string      CSV output path
  -xlsx string     XLSX output path
  -limit int       Headlines per source
  -help            Show this message

Without -config, configs/scraper.yaml is used when present; otherwise
the built-in TechCrunch and Economic Times sources apply.
`)
}
