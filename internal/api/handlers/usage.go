package handlers

import (
	"net/http"

	"stockpulse/internal/news"
)

// GetUsage handles GET /api/usage. It reports consumption of the daily
// upstream news API budget.
func GetUsage(tracker *news.UsageTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tracker.Stats())
	}
}
