package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stockpulse/internal/news"
)

// Refresher runs one fetch-process-store cycle and reports how many
// articles it processed.
type Refresher interface {
	Run(ctx context.Context) (int, error)
}

// Refresh handles POST /api/refresh. It runs the news pipeline synchronously
// and reports the number of articles processed. A spent upstream budget maps
// to 429 Too Many Requests.
func Refresh(runner Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		processed, err := runner.Run(ctx)
		if err != nil {
			if errors.Is(err, news.ErrBudgetExhausted) {
				writeError(w, http.StatusTooManyRequests, "Daily news API budget exhausted")
				return
			}
			slog.Error("refresh failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Refresh failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"articles_processed": processed})
	}
}

// Health handles GET /healthz.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
