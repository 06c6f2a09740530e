package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vendorconnect/vendorconnect-platform/internal/chatbot"
	httpmiddleware "github.com/vendorconnect/vendorconnect-platform/internal/http/middleware"
	"github.com/vendorconnect/vendorconnect-platform/internal/webchat"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	ChatbotHandler *chatbot.Handler
	WebchatHandler *webchat.Handler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string
	// RateLimiter throttles /api/chatbot per client IP when set.
	RateLimiter *httpmiddleware.RateLimiter

	// Readiness checks run by GET /ready.
	Readiness []ReadinessCheck

	// Operator routes (optional)
	AdminToken string
	Catalog    CatalogInvalidator
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthHandler)
		public.Get("/ready", readyHandler(cfg.Readiness, cfg.Logger))
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Chat widget API
	r.Route("/api/chatbot", func(api chi.Router) {
		api.Use(httpmiddleware.VendorIdentity)
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.Middleware)
		}

		if cfg.ChatbotHandler != nil {
			api.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				r.Post("/message", cfg.ChatbotHandler.Message)
				r.Post("/tag", cfg.ChatbotHandler.Tag)
				r.Post("/language", cfg.ChatbotHandler.Language)
			})
		}
		if cfg.WebchatHandler != nil {
			api.Get("/ws", cfg.WebchatHandler.HandleWebSocket)
			api.Get("/history", cfg.WebchatHandler.HandleHistory)
		}
	})

	// Operator routes
	if cfg.AdminToken != "" && cfg.Catalog != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(requireAdminToken(cfg.AdminToken))
			admin.Post("/catalog/invalidate", invalidateCatalogHandler(cfg.Catalog, cfg.Logger))
		})
	}

	return r
}
