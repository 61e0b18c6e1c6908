package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"stockpulse/internal/models"
	"stockpulse/internal/storage"
)

// GetNews handles GET /api/news?symbol={symbol}&limit={limit}. It returns
// stored articles, newest first, optionally filtered by ticker symbol.
func GetNews(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
		limit := queryInt(r, "limit", 50)

		articles, err := store.ListArticles(ctx, symbol, limit)
		if err != nil {
			slog.Error("failed to list articles", "symbol", symbol, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list articles")
			return
		}

		if articles == nil {
			articles = []models.Article{}
		}
		writeJSON(w, http.StatusOK, articles)
	}
}

// GetNewsBySymbol handles GET /api/news/{symbol}. It returns stored articles
// for one ticker symbol, newest first.
func GetNewsBySymbol(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
		if symbol == "" {
			writeError(w, http.StatusBadRequest, "Symbol is required")
			return
		}
		limit := queryInt(r, "limit", 50)

		articles, err := store.ListArticles(ctx, symbol, limit)
		if err != nil {
			slog.Error("failed to list articles", "symbol", symbol, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list articles")
			return
		}

		if articles == nil {
			articles = []models.Article{}
		}
		writeJSON(w, http.StatusOK, articles)
	}
}
