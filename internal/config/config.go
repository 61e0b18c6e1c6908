package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	News    NewsConfig    `toml:"news"`
	AI      AIConfig      `toml:"ai"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Refresh RefreshConfig `toml:"refresh"`
}

// NewsConfig holds upstream news API settings.
type NewsConfig struct {
	APIToken          string      `toml:"api_token"`
	Symbols           []string    `toml:"symbols"`
	ArticlesPerSymbol int         `toml:"articles_per_symbol"`
	DailyRequestLimit int         `toml:"daily_request_limit"`
	LookbackDays      int         `toml:"lookback_days"`
	ScrapeFullText    bool        `toml:"scrape_full_text"`
	RSSFeeds          []FeedEntry `toml:"rss_feeds"`
}

// FeedEntry is one supplemental RSS/Atom feed. Feeds are fetched alongside
// the news API on every refresh and do not count against the daily request
// budget. Symbol optionally pins every item from the feed to one ticker.
type FeedEntry struct {
	Name   string `toml:"name"`
	URL    string `toml:"url"`
	Symbol string `toml:"symbol"`
}

// AIConfig holds the optional abstractive summarization provider settings.
// An empty api_key disables the provider; the extractive engine runs
// regardless.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// RefreshConfig holds background refresh settings.
type RefreshConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

const defaultConfigContent = `[news]
api_token = ""                    # MarketAux API token (or set NEWS_API_TOKEN env var)
symbols = ["AAPL", "TSLA"]
articles_per_symbol = 3
daily_request_limit = 100         # MarketAux free tier budget
lookback_days = 7
scrape_full_text = false          # fetch full article text for summarization

# Supplemental RSS feeds, fetched on every refresh at no budget cost.
# [[news.rss_feeds]]
# name = "Yahoo Finance Top Stories"
# url = "https://finance.yahoo.com/news/rssindex"
# symbol = ""                     # optional: pin all items to one ticker

[ai]
provider = "anthropic"            # "anthropic" or "openai"
api_key = ""                      # leave empty to run the extractive engine only
model = "claude-haiku-4-5"

[server]
port = 8080

[storage]
data_dir = "data"                 # holds stockpulse.db and api_usage.json

[refresh]
interval_minutes = 60             # 0 disables background refresh
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("news", "lookback_days") {
		if cfg.News.LookbackDays < 1 {
			return fmt.Errorf("invalid news.lookback_days %d: must be >= 1", cfg.News.LookbackDays)
		}
	}
	if md.IsDefined("news", "daily_request_limit") {
		if cfg.News.DailyRequestLimit < 1 {
			return fmt.Errorf("invalid news.daily_request_limit %d: must be >= 1", cfg.News.DailyRequestLimit)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if len(cfg.News.Symbols) == 0 {
		cfg.News.Symbols = []string{"AAPL", "TSLA"}
	}
	if cfg.News.ArticlesPerSymbol == 0 {
		cfg.News.ArticlesPerSymbol = 3
	}
	if cfg.News.DailyRequestLimit == 0 {
		cfg.News.DailyRequestLimit = 100
	}
	if cfg.News.LookbackDays == 0 {
		cfg.News.LookbackDays = 7
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "anthropic"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "claude-haiku-4-5"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Refresh.IntervalMinutes == 0 {
		cfg.Refresh.IntervalMinutes = 60
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. ANTHROPIC_API_KEY (when provider is "anthropic")
//  3. OPENAI_API_KEY (when provider is "openai")
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NEWS_API_TOKEN"); v != "" {
		cfg.News.APIToken = v
	}

	// Apply provider-specific env var first (lower priority).
	switch cfg.AI.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}

	// AI_API_KEY overrides everything (highest priority).
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "anthropic", "openai":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"anthropic\" or \"openai\"", cfg.AI.Provider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.News.LookbackDays < 1 {
		return fmt.Errorf("invalid news.lookback_days %d: must be >= 1", cfg.News.LookbackDays)
	}

	for i, f := range cfg.News.RSSFeeds {
		if f.URL == "" {
			return fmt.Errorf("invalid news.rss_feeds[%d]: url is required", i)
		}
	}

	if cfg.News.APIToken == "" {
		slog.Warn("news.api_token is empty: set it in the config file or via NEWS_API_TOKEN environment variable")
	}

	return nil
}
