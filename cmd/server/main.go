package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"stockpulse/internal/ai"
	"stockpulse/internal/api"
	"stockpulse/internal/config"
	"stockpulse/internal/news"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/storage"
	"stockpulse/internal/summarize"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(cfg.Storage.DataDir, "stockpulse.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	store := storage.NewStore(db)

	// Track upstream requests against the daily budget.
	tracker := news.NewUsageTracker(cfg.Storage.DataDir, cfg.News.DailyRequestLimit)

	// Create AI provider (nil if no API key -- the engine falls back to the
	// extractive path).
	var abstractive summarize.Abstractive
	if cfg.AI.APIKey != "" {
		provider, err := ai.NewProvider(ai.ProviderConfig{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
		})
		if err != nil {
			slog.Error("failed to create AI provider", "error", err)
			os.Exit(1)
		}
		abstractive = provider
		slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	} else {
		slog.Info("no AI provider API key configured, running extractive summarization only")
	}

	engine := summarize.NewEngine(abstractive)
	client := news.NewClient(cfg.News.APIToken, tracker)
	scraper := news.NewScraper()

	// Supplemental RSS feeds, fetched alongside the news API at no budget
	// cost.
	var feedSource pipeline.FeedFetcher
	var feeds []news.Feed
	if len(cfg.News.RSSFeeds) > 0 {
		for _, f := range cfg.News.RSSFeeds {
			feeds = append(feeds, news.Feed{Name: f.Name, URL: f.URL, Symbol: f.Symbol})
		}
		feedSource = news.NewRSSSource()
		slog.Info("rss feeds configured", "count", len(feeds))
	}

	runner := pipeline.New(client, feedSource, scraper, engine, store, pipeline.Options{
		Symbols:           cfg.News.Symbols,
		ArticlesPerSymbol: cfg.News.ArticlesPerSymbol,
		Feeds:             feeds,
		LookbackDays:      cfg.News.LookbackDays,
		ScrapeFullText:    cfg.News.ScrapeFullText,
	})

	// Background refresh loop.
	if cfg.Refresh.IntervalMinutes > 0 {
		go refreshLoop(context.Background(), runner, time.Duration(cfg.Refresh.IntervalMinutes)*time.Minute)
	}

	// Build router with all API routes.
	router := api.NewRouter(store, tracker, runner)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// refreshLoop runs the pipeline immediately and then on every tick.
func refreshLoop(ctx context.Context, runner *pipeline.Pipeline, interval time.Duration) {
	run := func() {
		processed, err := runner.Run(ctx)
		if err != nil {
			slog.Warn("scheduled refresh failed", "error", err)
			return
		}
		slog.Info("scheduled refresh complete", "articles", processed)
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
