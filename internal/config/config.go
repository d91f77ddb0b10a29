// Package config provides configuration management for the headlines scraper.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scrape modes.
const (
	// ModePerSource takes the first N entries of every source in feed
	// order.
	ModePerSource = "per_source"
	// ModeGlobalTop pools entries from every source and keeps the
	// newest N overall, by published timestamp.
	ModeGlobalTop = "global_top"
)

// Configuration validation errors.
var (
	ErrNoSources         = errors.New("at least one source is required")
	ErrSourceMissingName = errors.New("source name is required")
	ErrSourceMissingURL  = errors.New("source url is required")
	ErrNoEnabledSources  = errors.New("at least one source must be enabled")
	ErrInvalidTimeout    = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidPerSource  = errors.New("limits.per_source must be at least 1")
	ErrInvalidGlobalPool = errors.New("limits.global_pool must be at least 1")
	ErrInvalidGlobalTop  = errors.New("limits.global_top must be at least 1")
	ErrInvalidMode       = errors.New("mode must be 'per_source' or 'global_top'")
	ErrMissingCSVPath    = errors.New("output.csv_path is required")
	ErrMissingXLSXPath   = errors.New("output.xlsx_path is required")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
}

// ScraperConfig contains scraper-specific settings.
type ScraperConfig struct {
	Sources []SourceConfig `yaml:"sources"`
	Fetch   FetchConfig    `yaml:"fetch"`
	Mode    string         `yaml:"mode"`
	Limits  LimitsConfig   `yaml:"limits"`
	Output  OutputConfig   `yaml:"output"`
	Logging LoggingConfig  `yaml:"logging"`
}

// SourceConfig represents one RSS source. The primary URL is tried
// first; backup URLs are fallbacks tried in order until one yields a
// usable feed.
type SourceConfig struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	BackupURLs []string `yaml:"backup_urls"`
	Enabled    bool     `yaml:"enabled"`
}

// AllURLs returns the primary URL followed by the backups.
func (s *SourceConfig) AllURLs() []string {
	urls := []string{s.URL}
	urls = append(urls, s.BackupURLs...)

	return urls
}

// FetchConfig defines HTTP fetch behavior.
type FetchConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// Timeout returns the fetch timeout duration.
func (f *FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// LimitsConfig bounds how many entries are taken.
type LimitsConfig struct {
	// PerSource is the number of entries taken per source in
	// per-source mode.
	PerSource int `yaml:"per_source"`
	// GlobalPool is the number of entries pooled per source in
	// global-top mode before ranking.
	GlobalPool int `yaml:"global_pool"`
	// GlobalTop is the number of entries kept overall in global-top
	// mode.
	GlobalTop int `yaml:"global_top"`
}

// OutputConfig defines the tabular output files. Both paths are
// overwritten in full on every run.
type OutputConfig struct {
	CSVPath   string `yaml:"csv_path"`
	XLSXPath  string `yaml:"xlsx_path"`
	SheetName string `yaml:"sheet_name"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration: TechCrunch plus Economic
// Times top stories, with the Economic Times fallback endpoints that
// have historically served the feed.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			Sources: []SourceConfig{
				{
					Name:    "TechCrunch",
					URL:     "https://techcrunch.com/feed/",
					Enabled: true,
				},
				{
					Name: "Economic Times - Top Stories",
					URL:  "https://b2b.economictimes.indiatimes.com/rss/topstories",
					BackupURLs: []string{
						"https://economictimes.indiatimes.com/feeds/newsdefault.cms",
						"https://economictimes.indiatimes.com/rssfeedsdefault.cms",
						"https://economictimes.indiatimes.com/defaultinterstitial.cms",
					},
					Enabled: true,
				},
			},
			Fetch: FetchConfig{
				TimeoutSec: 15,
				// Browser-like UA to avoid being served an HTML interstitial
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36",
			},
			Mode: ModePerSource,
			Limits: LimitsConfig{
				PerSource:  4,
				GlobalPool: 12,
				GlobalTop:  4,
			},
			Output: OutputConfig{
				CSVPath:   "news_headlines.csv",
				XLSXPath:  "news_headlines.xlsx",
				SheetName: "Headlines",
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
	}
}

// LoadConfig reads and validates a YAML configuration file. Fields the
// file leaves unset inherit the built-in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so a partial document keeps them.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if len(c.Scraper.Sources) == 0 {
		return ErrNoSources
	}

	enabled := 0

	for i := range c.Scraper.Sources {
		src := &c.Scraper.Sources[i]
		if src.Name == "" {
			return fmt.Errorf("%w (source %d)", ErrSourceMissingName, i+1)
		}

		if src.URL == "" {
			return fmt.Errorf("%w (source %q)", ErrSourceMissingURL, src.Name)
		}

		if src.Enabled {
			enabled++
		}
	}

	if enabled == 0 {
		return ErrNoEnabledSources
	}

	if c.Scraper.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Scraper.Mode != ModePerSource && c.Scraper.Mode != ModeGlobalTop {
		return ErrInvalidMode
	}

	if c.Scraper.Limits.PerSource < 1 {
		return ErrInvalidPerSource
	}

	if c.Scraper.Limits.GlobalPool < 1 {
		return ErrInvalidGlobalPool
	}

	if c.Scraper.Limits.GlobalTop < 1 {
		return ErrInvalidGlobalTop
	}

	if c.Scraper.Output.CSVPath == "" {
		return ErrMissingCSVPath
	}

	if c.Scraper.Output.XLSXPath == "" {
		return ErrMissingXLSXPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in config order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Scraper.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, Mode: %s, PerSource: %d, CSV: %s, XLSX: %s}",
		len(c.Scraper.Sources),
		c.Scraper.Mode,
		c.Scraper.Limits.PerSource,
		c.Scraper.Output.CSVPath,
		c.Scraper.Output.XLSXPath,
	)
}
