package news

import (
	"testing"
	"time"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.reuters.com/markets/apple-earnings", "www.reuters.com"},
		{"http://example.com/article?id=1", "example.com"},
		{"https://finance.yahoo.com:8080/news", "finance.yahoo.com"},
		{"://not a url", "://not a url"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := extractDomain(tt.url); got != tt.want {
			t.Errorf("extractDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestWaitForRateLimit(t *testing.T) {
	s := NewScraper()

	// First request to a domain should not block.
	start := time.Now()
	s.waitForRateLimit("example.com")
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first request blocked for %v", elapsed)
	}

	// Second request to the same domain should wait out the delay.
	start = time.Now()
	s.waitForRateLimit("example.com")
	if elapsed := time.Since(start); elapsed < rateLimitDelay-50*time.Millisecond {
		t.Errorf("second request waited only %v, want ~%v", elapsed, rateLimitDelay)
	}

	// A different domain is not affected.
	start = time.Now()
	s.waitForRateLimit("other.com")
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("unrelated domain blocked for %v", elapsed)
	}
}
