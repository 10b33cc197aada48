package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/delivery/http/handler"
	"github.com/user/company-analyzer/internal/delivery/http/middleware"
	"github.com/user/company-analyzer/pkg/config"
)

// Options configures the cross-cutting behaviour of the router.
type Options struct {
	Logger         *zap.Logger
	SubmitLimit    config.RateLimitConfig
	AllowedOrigins []string
}

func New(h *handler.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.With(middleware.RateLimit(opts.SubmitLimit)).Post("/analyze", h.HandleSubmitAnalysis)
		r.Get("/analysis/{id}", h.HandleGetAnalysis)
	})

	return r
}
