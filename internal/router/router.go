// Package router sets up the HTTP routes and middleware chain for the
// content receiver. The surface is deliberately small: one webhook
// endpoint plus a health check.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"contentreceiver/internal/ingest"
	"contentreceiver/internal/middleware"
)

// New creates the configured Chi router. limiter may be nil to disable
// rate limiting, which the tests use.
func New(webhook *ingest.Handler, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth, no rate limit.
	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(api chi.Router) {
		if limiter != nil {
			api.Use(limiter.Middleware)
		}
		api.Post("/webhook", webhook.Receive)
	})

	return r
}

// healthHandler responds to health check probes.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
