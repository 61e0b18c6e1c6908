// Package pipeline runs the fetch-process-store cycle: pull articles from
// the news sources, run each through the summarization engine, and persist
// the results.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"stockpulse/internal/models"
	"stockpulse/internal/news"
	"stockpulse/internal/storage"
	"stockpulse/internal/summarize"
)

// maxConcurrent bounds the number of symbols fetched in parallel.
const maxConcurrent = 4

// Fetcher retrieves raw articles for a set of ticker symbols.
type Fetcher interface {
	FetchNews(ctx context.Context, symbols []string, limit int) ([]models.Article, error)
}

// TextExtractor pulls the full readable text of an article page.
type TextExtractor interface {
	Extract(articleURL string) (string, error)
}

// FeedFetcher retrieves articles from supplemental RSS feeds. Unlike the
// news API client it carries no request budget.
type FeedFetcher interface {
	FetchAll(ctx context.Context, feeds []news.Feed, lookbackDays int) (*news.FetchResult, error)
}

// Options controls one pipeline run.
type Options struct {
	Symbols           []string
	ArticlesPerSymbol int
	Feeds             []news.Feed
	LookbackDays      int

	// ScrapeFullText fetches the article body for summarization instead of
	// relying on the snippet alone.
	ScrapeFullText bool
}

// Pipeline wires the news sources, the summarization engine, and the store.
type Pipeline struct {
	fetcher   Fetcher
	feeds     FeedFetcher
	extractor TextExtractor
	engine    *summarize.Engine
	store     *storage.Store
	opts      Options
}

// New creates a Pipeline. extractor may be nil when full-text scraping is
// disabled, and feeds may be nil when no RSS feeds are configured.
func New(fetcher Fetcher, feeds FeedFetcher, extractor TextExtractor, engine *summarize.Engine, store *storage.Store, opts Options) *Pipeline {
	if opts.ArticlesPerSymbol <= 0 {
		opts.ArticlesPerSymbol = 3
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 7
	}
	return &Pipeline{
		fetcher:   fetcher,
		feeds:     feeds,
		extractor: extractor,
		engine:    engine,
		store:     store,
		opts:      opts,
	}
}

// Run executes one fetch-process-store cycle over all configured symbols
// and returns the number of articles processed. Per-symbol fetch failures
// are logged and skipped; Run fails only when every symbol failed, and
// surfaces ErrBudgetExhausted when the upstream budget stopped the run.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	var (
		mu        sync.Mutex
		processed []models.Article
		failures  []error
	)

	// The group context is canceled once Wait returns; keep the caller's
	// ctx for the save below.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, symbol := range p.opts.Symbols {
		g.Go(func() error {
			articles, err := p.fetcher.FetchNews(gctx, []string{symbol}, p.opts.ArticlesPerSymbol)
			if err != nil {
				slog.Warn("failed to fetch news", "symbol", symbol, "error", err)
				mu.Lock()
				failures = append(failures, fmt.Errorf("symbol %s: %w", symbol, err))
				mu.Unlock()
				return nil // skip failures, don't fail the batch
			}

			for i := range articles {
				a := p.process(gctx, articles[i], symbol)
				mu.Lock()
				processed = append(processed, a)
				mu.Unlock()
			}
			return nil
		})
	}

	if p.feeds != nil && len(p.opts.Feeds) > 0 {
		g.Go(func() error {
			result, err := p.feeds.FetchAll(gctx, p.opts.Feeds, p.opts.LookbackDays)
			if err != nil {
				slog.Warn("failed to fetch rss feeds", "error", err)
				return nil // feeds are supplemental, never fail the run
			}

			for i := range result.Articles {
				a := p.process(gctx, result.Articles[i], result.Articles[i].Symbol)
				mu.Lock()
				processed = append(processed, a)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("fetching news: %w", err)
	}

	if len(processed) == 0 && len(failures) > 0 {
		for _, err := range failures {
			if errors.Is(err, news.ErrBudgetExhausted) {
				return 0, news.ErrBudgetExhausted
			}
		}
		return 0, fmt.Errorf("all symbols failed: %w", failures[0])
	}

	if err := p.store.SaveArticles(ctx, processed); err != nil {
		return 0, fmt.Errorf("saving articles: %w", err)
	}

	slog.Info("pipeline run complete",
		"symbols", len(p.opts.Symbols),
		"articles", len(processed),
		"failures", len(failures),
	)
	return len(processed), nil
}

// process runs one article through the summarization engine. The article's
// snippet is the summarization input unless full-text scraping is enabled
// and succeeds.
func (p *Pipeline) process(ctx context.Context, a models.Article, symbol string) models.Article {
	if a.Symbol == "" {
		a.Symbol = symbol
	}

	text := a.Snippet
	if p.opts.ScrapeFullText && p.extractor != nil {
		full, err := p.extractor.Extract(a.URL)
		if err != nil {
			slog.Warn("full-text extraction failed, using snippet", "url", a.URL, "error", err)
		} else if full != "" {
			text = full
		}
	}

	result := p.engine.Process(ctx, summarize.Article{
		Title:       a.Title,
		Description: text,
		CompanyName: a.CompanyName,
	})

	a.EnhancedTitle = result.EnhancedTitle
	a.Summary = result.Summary
	a.Keywords = summarize.ExtractKeywords(summarize.Sanitize(text), summarize.DefaultKeywordCount)

	return a
}
