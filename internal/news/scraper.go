package news

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	scrapeTimeout  = 30 * time.Second
	rateLimitDelay = 1 * time.Second
	maxWords       = 5000
)

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; StockPulse/1.0)")
}

// Scraper extracts the main readable text of article pages with per-domain
// rate limiting.
type Scraper struct {
	rateLimiter map[string]time.Time // per-domain last request time
	mu          sync.Mutex           // protects rateLimiter
}

// NewScraper creates a Scraper.
func NewScraper() *Scraper {
	return &Scraper{
		rateLimiter: make(map[string]time.Time),
	}
}

// Extract fetches the full article text from the given URL using
// go-readability. The returned text is truncated to 5000 words maximum.
func (s *Scraper) Extract(articleURL string) (string, error) {
	s.waitForRateLimit(extractDomain(articleURL))

	article, err := readability.FromURL(articleURL, scrapeTimeout, browserHeaders)
	if err != nil {
		return "", fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return truncateWords(article.TextContent, maxWords), nil
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed.
func (s *Scraper) waitForRateLimit(domain string) {
	s.mu.Lock()
	lastReq, ok := s.rateLimiter[domain]
	if ok {
		elapsed := time.Since(lastReq)
		if elapsed < rateLimitDelay {
			s.mu.Unlock()
			time.Sleep(rateLimitDelay - elapsed)
			s.mu.Lock()
		}
	}
	s.rateLimiter[domain] = time.Now()
	s.mu.Unlock()
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
