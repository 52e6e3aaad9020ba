package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eventdeskio/eventdesk-leads/internal/http/middleware"
	"github.com/eventdeskio/eventdesk-leads/internal/leads"
	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

// Config holds the router's dependencies.
type Config struct {
	LeadsHandler   *leads.Handler
	MetricsHandler http.Handler
	AllowedOrigins []string
	Logger         *logging.Logger
}

// New builds the HTTP router for the leads API.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.LeadsHandler.HealthCheck)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1/leads", func(r chi.Router) {
		r.Post("/early-access", cfg.LeadsHandler.SubmitEarlyAccess)
		r.Post("/demo-schedule", cfg.LeadsHandler.SubmitDemoSchedule)
	})

	return r
}
