package news

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stockpulse/internal/models"
)

const usageFileName = "api_usage.json"

// DefaultDailyLimit is the MarketAux free tier request budget.
const DefaultDailyLimit = 100

// usageData is the on-disk shape of the usage tracker state.
type usageData struct {
	LastReset     time.Time `json:"last_reset"`
	RequestsToday int       `json:"requests_today"`
	TotalRequests int64     `json:"total_requests"`
}

// UsageTracker counts upstream news API requests against a daily budget and
// persists the count across restarts. The counter resets at local midnight.
// All methods are safe for concurrent use.
type UsageTracker struct {
	path  string
	limit int

	mu   sync.Mutex
	data usageData
}

// NewUsageTracker creates a tracker backed by api_usage.json inside dataDir.
// A missing or corrupted state file resets the counters; limit <= 0 selects
// DefaultDailyLimit.
func NewUsageTracker(dataDir string, limit int) *UsageTracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	t := &UsageTracker{
		path:  filepath.Join(dataDir, usageFileName),
		limit: limit,
	}
	t.data = t.load()
	return t
}

func (t *UsageTracker) load() usageData {
	fresh := usageData{LastReset: time.Now()}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read API usage file, starting fresh", "path", t.path, "error", err)
		}
		return fresh
	}

	var data usageData
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Warn("corrupted API usage file, starting fresh", "path", t.path, "error", err)
		return fresh
	}
	if data.LastReset.IsZero() {
		return fresh
	}
	return data
}

// save writes the current state to disk. Callers must hold t.mu.
func (t *UsageTracker) save() {
	raw, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		slog.Error("failed to marshal API usage data", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		slog.Error("failed to create API usage directory", "path", t.path, "error", err)
		return
	}
	if err := os.WriteFile(t.path, raw, 0o644); err != nil {
		slog.Error("failed to write API usage file", "path", t.path, "error", err)
	}
}

// checkResetDay zeroes the daily counter when the calendar date has rolled
// over since the last reset. Callers must hold t.mu.
func (t *UsageTracker) checkResetDay() {
	now := time.Now()
	last := t.data.LastReset
	if now.Year() == last.Year() && now.YearDay() == last.YearDay() {
		return
	}
	t.data.LastReset = now
	t.data.RequestsToday = 0
	t.save()
}

// CanRequest reports whether another upstream request fits in today's budget.
func (t *UsageTracker) CanRequest() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkResetDay()
	return t.data.RequestsToday < t.limit
}

// Record counts one upstream request and persists the new state.
func (t *UsageTracker) Record() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkResetDay()
	t.data.RequestsToday++
	t.data.TotalRequests++
	t.save()
}

// Remaining returns the number of requests left in today's budget.
func (t *UsageTracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkResetDay()
	return t.limit - t.data.RequestsToday
}

// Stats returns a snapshot of today's consumption.
func (t *UsageTracker) Stats() models.UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkResetDay()
	return models.UsageStats{
		Date:      t.data.LastReset.Format("2006-01-02"),
		Used:      t.data.RequestsToday,
		Limit:     t.limit,
		Remaining: t.limit - t.data.RequestsToday,
	}
}
