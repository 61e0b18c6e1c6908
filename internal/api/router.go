package api

import (
	"github.com/go-chi/chi/v5"

	"stockpulse/internal/api/handlers"
	"stockpulse/internal/news"
	"stockpulse/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, tracker *news.UsageTracker, runner handlers.Refresher) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/healthz", handlers.Health())

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Get("/news", handlers.GetNews(store))
		api.Get("/news/{symbol}", handlers.GetNewsBySymbol(store))
		api.Get("/usage", handlers.GetUsage(tracker))
		api.Post("/refresh", handlers.Refresh(runner))
	})

	return r
}
