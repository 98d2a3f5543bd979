package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/jaundice-service/internal/delivery/http/handler"
	"github.com/user/jaundice-service/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// New builds the HTTP routes. requestTimeout bounds each request; it should
// outlast the slowest batch (see config.Config.RequestTimeout).
func New(h *handler.Handler, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/", h.HandleRateQuery)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/rate", h.HandleRate)
		r.Post("/rate", h.HandleRate)
		r.Get("/ratings", h.HandleHistory)
	})

	return r
}
