package news

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"stockpulse/internal/models"
)

const (
	feedTimeout   = 30 * time.Second
	maxConcurrent = 10
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// Feed is one RSS/Atom news source, optionally pinned to a ticker symbol.
type Feed struct {
	Name   string
	URL    string
	Symbol string
}

// FailedFeed records a feed that could not be fetched.
type FailedFeed struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// FetchResult contains the successfully fetched articles and any failures.
type FetchResult struct {
	Articles []models.Article
	Failed   []FailedFeed
}

// RSSSource fetches market news from RSS/Atom feeds. It is the zero-cost
// complement to the MarketAux client and is not subject to the daily budget.
type RSSSource struct {
	client *http.Client
}

// NewRSSSource creates an RSSSource with a 30-second timeout HTTP client
// that sends browser-like request headers.
func NewRSSSource() *RSSSource {
	return &RSSSource{
		client: &http.Client{
			Timeout: feedTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject browser-like
// headers on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	// Use a browser-like User-Agent to avoid bot detection on some sites.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return t.base.RoundTrip(req)
}

// FetchAll fetches all feeds concurrently with a maximum of 10 goroutines.
// Individual feed failures are collected in FetchResult.Failed rather than
// failing the entire batch.
func (s *RSSSource) FetchAll(ctx context.Context, feeds []Feed, lookbackDays int) (*FetchResult, error) {
	var (
		result FetchResult
		mu     sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, feed := range feeds {
		g.Go(func() error {
			articles, err := s.fetchSingleFeed(ctx, feed, lookbackDays)
			if err != nil {
				slog.Warn("failed to fetch feed",
					"source", feed.Name,
					"url", feed.URL,
					"error", err,
				)

				mu.Lock()
				result.Failed = append(result.Failed, FailedFeed{
					Source: feed.Name,
					Error:  err.Error(),
				})
				mu.Unlock()

				return nil // skip failures, don't fail the batch
			}

			mu.Lock()
			result.Articles = append(result.Articles, articles...)
			mu.Unlock()

			slog.Info("fetched feed",
				"source", feed.Name,
				"items", len(articles),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching feeds: %w", err)
	}

	return &result, nil
}

// fetchSingleFeed retrieves and parses one feed. Items older than the
// lookback window, and items missing a title or link, are skipped.
func (s *RSSSource) fetchSingleFeed(ctx context.Context, feed Feed, lookbackDays int) ([]models.Article, error) {
	fp := gofeed.NewParser()
	fp.Client = s.client

	parsed, err := fp.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feed.URL, err)
	}

	cutoff := time.Now().AddDate(0, 0, -lookbackDays)
	now := time.Now()

	var articles []models.Article
	for _, item := range parsed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		// Filter by publication date when available.
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			publishedAt = &t
		}

		articles = append(articles, models.Article{
			Symbol:      feed.Symbol,
			Title:       item.Title,
			URL:         item.Link,
			Source:      feed.Name,
			Snippet:     stripHTML(item.Description),
			PublishedAt: publishedAt,
			FetchedAt:   now,
		})
	}

	return articles, nil
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}
