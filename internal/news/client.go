package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stockpulse/internal/models"
)

const marketauxAPIURL = "https://api.marketaux.com/v1/news/all"

// ErrBudgetExhausted is returned when the daily upstream request budget has
// been consumed. Callers should fall back to cached or RSS data.
var ErrBudgetExhausted = errors.New("daily news API request budget exhausted")

// Client fetches stock news from the MarketAux API. Every outgoing request
// is counted against the optional UsageTracker before it is sent.
type Client struct {
	token   string
	baseURL string
	tracker *UsageTracker
	client  *http.Client
}

// NewClient creates a MarketAux client with a 30-second timeout HTTP client.
// A nil tracker disables budget enforcement.
func NewClient(token string, tracker *UsageTracker) *Client {
	return &Client{
		token:   token,
		baseURL: marketauxAPIURL,
		tracker: tracker,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// newsItem is a single article in the MarketAux response.
type newsItem struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Entities    []struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"entities"`
}

// newsResponse is the MarketAux /v1/news/all response envelope.
type newsResponse struct {
	Data  []newsItem `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchNews retrieves up to limit articles for the given ticker symbols.
// Articles without a title or URL are skipped. Returns ErrBudgetExhausted
// without making a request when the daily budget is spent.
func (c *Client) FetchNews(ctx context.Context, symbols []string, limit int) ([]models.Article, error) {
	if c.tracker != nil && !c.tracker.CanRequest() {
		return nil, ErrBudgetExhausted
	}

	params := url.Values{}
	params.Set("api_token", c.token)
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	slog.Debug("fetching news", "symbols", strings.Join(symbols, ","), "limit", limit)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	defer resp.Body.Close()

	if c.tracker != nil {
		c.tracker.Record()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiResp newsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Error != nil {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	now := time.Now()
	articles := make([]models.Article, 0, len(apiResp.Data))
	for _, item := range apiResp.Data {
		if item.Title == "" || item.URL == "" {
			continue
		}

		a := models.Article{
			Title:     item.Title,
			URL:       item.URL,
			Source:    item.Source,
			Snippet:   item.Snippet,
			FetchedAt: now,
		}
		if a.Snippet == "" {
			a.Snippet = item.Description
		}
		if len(item.Entities) > 0 {
			a.Symbol = item.Entities[0].Symbol
			a.CompanyName = item.Entities[0].Name
		}
		if t := parsePublishedAt(item.PublishedAt); t != nil {
			a.PublishedAt = t
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// parsePublishedAt handles the timestamp formats MarketAux emits.
func parsePublishedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.000000Z",
		time.RFC3339,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
