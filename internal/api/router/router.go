package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/clinic-embed/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/clinic-embed/internal/http/middleware"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	EmbedHandler   *handlers.EmbedHandler
	HeightSync     http.Handler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	if cfg.EmbedHandler != nil {
		r.Mount("/embed", cfg.EmbedHandler.Routes())
	}
	if cfg.HeightSync != nil {
		r.Handle("/heightsync", cfg.HeightSync)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
