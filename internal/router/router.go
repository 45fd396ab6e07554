package router

import (
	"roblox-pass-proxy/internal/handler"
	"roblox-pass-proxy/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler         *handler.Handler
	PassHandler     *handler.PassHandler
	UniverseHandler *handler.UniverseHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	// Roblox HttpService and browser clients call from anywhere.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache"},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/health", cfg.Handler.Health)
		r.Get("/api/status", cfg.Handler.Status)
	}

	if cfg.PassHandler != nil {
		r.Get("/passes", cfg.PassHandler.GetPasses)
	}

	if cfg.UniverseHandler != nil {
		r.Get("/universes", cfg.UniverseHandler.GetUniverses)
	}

	r.Handle("/metrics", promhttp.Handler())

	return r
}
