package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockpulse/internal/news"
)

// stubRefresher is a canned pipeline for handler tests.
type stubRefresher struct {
	processed int
	err       error
}

func (s *stubRefresher) Run(ctx context.Context) (int, error) {
	return s.processed, s.err
}

func TestRefresh(t *testing.T) {
	t.Run("reports processed count", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		w := httptest.NewRecorder()

		Refresh(&stubRefresher{processed: 7})(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", w.Code)
		}
		var got map[string]int
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if got["articles_processed"] != 7 {
			t.Errorf("articles_processed = %d, want 7", got["articles_processed"])
		}
	})

	t.Run("budget exhausted maps to 429", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		w := httptest.NewRecorder()

		Refresh(&stubRefresher{err: news.ErrBudgetExhausted})(w, r)

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("got status %d, want 429", w.Code)
		}
	})

	t.Run("other errors map to 500", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		w := httptest.NewRecorder()

		Refresh(&stubRefresher{err: errors.New("boom")})(w, r)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("got status %d, want 500", w.Code)
		}
	})
}

func TestGetUsage(t *testing.T) {
	tracker := news.NewUsageTracker(t.TempDir(), 100)
	tracker.Record()

	r := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	w := httptest.NewRecorder()

	GetUsage(tracker)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var got struct {
		Used      int `json:"used"`
		Limit     int `json:"limit"`
		Remaining int `json:"remaining"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Used != 1 || got.Limit != 100 || got.Remaining != 99 {
		t.Errorf("usage = %+v", got)
	}
}

func TestHealth(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	Health()(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
}
