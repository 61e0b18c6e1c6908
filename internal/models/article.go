package models

import "time"

// Article represents a single stock news article after processing.
type Article struct {
	ID            int64      `json:"id"`
	Symbol        string     `json:"symbol"`
	CompanyName   string     `json:"company_name,omitempty"`
	Title         string     `json:"title"`
	EnhancedTitle string     `json:"enhanced_title"`
	URL           string     `json:"url"`
	Source        string     `json:"source,omitempty"`
	Snippet       string     `json:"snippet,omitempty"`
	Summary       string     `json:"summary"`
	Keywords      []string   `json:"keywords,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	FetchedAt     time.Time  `json:"fetched_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// UsageStats reports consumption against the daily news API budget.
type UsageStats struct {
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}
