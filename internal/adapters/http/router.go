// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nholloway4/followd/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	followerHandler *handlers.FollowerHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users/{login}", func(r chi.Router) {
			r.Get("/followers", followerHandler.GetFollowers)
			r.Post("/refresh", followerHandler.Refresh)
			r.Post("/sync", followerHandler.Sync)
			r.Get("/profile", followerHandler.GetProfile)
		})

		r.Get("/actions", followerHandler.GetActions)
	})

	return r
}
