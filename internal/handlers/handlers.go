package handlers

import (
	"Pereval/internal/config"
	"Pereval/internal/metrics"
	"Pereval/internal/middleware"
	"Pereval/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	perevalService *service.PerevalService,
	logger *zap.SugaredLogger,
	config *config.Config,
	registry *prometheus.Registry,
) *Handler {
	m := metrics.New(registry)

	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)

	perevalHandler := NewPerevalHandler(perevalService, logger, config, m)

	// API. /metrics сюда не входит: promhttp сжимает ответ сам
	r.Group(func(r chi.Router) {
		r.Use(middleware.WithMetrics(m))
		r.Use(middleware.WithGzip)

		r.Post("/submitData", perevalHandler.Submit)
		r.Get("/submitData", perevalHandler.ListByEmail)
		r.Get("/submitData/", perevalHandler.ListByEmail)
		r.Get("/submitData/{id}", perevalHandler.Get)
		r.Patch("/submitData/{id}", perevalHandler.Update)
	})

	// Service routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &Handler{Router: r}
}
