// Package api wires the HTTP router: middleware, docs, metrics and the
// versioned JSON routes served by package handler.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/courtside/internal/api/handler"
	"github.com/albapepper/courtside/internal/auth"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/metrics"
)

// NewRouter creates and configures the chi router with all middleware and
// routes. revoked backs logout; nil disables the revocation check.
func NewRouter(deps handler.Deps, revoked auth.RevocationChecker, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "X-Request-Id", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(deps)
	requireAuth := deps.Auth.RequireAuth(revoked, deps.Logger)

	// --- Routes ---
	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.With(requireAuth).Post("/logout", h.Logout)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/search", h.SearchPlayers)
			r.Get("/lookup", h.LookupPlayer)
			r.Get("/{playerID}", h.GetPlayerDetails)
		})

		r.Route("/roster", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.GetRoster)
			r.Post("/{playerID}", h.AddToRoster)
			r.Delete("/{playerID}", h.RemoveFromRoster)
		})

		r.Route("/profiles/{playerID}", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Get("/comments", h.GetComments)
			r.With(requireAuth).Post("/comments", h.PostComment)
			r.Get("/snapshots", h.GetSnapshots)
			r.With(requireAuth).Post("/snapshots", h.PostSnapshot)
		})
	})

	return r
}
