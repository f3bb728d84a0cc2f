package http

import (
	"net/http"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	prometheus http.Handler
}

// NewMetricsHandler wraps the handler built by infrastructure.InitializeOTel.
// A nil handler answers 404, as when metrics are disabled.
func NewMetricsHandler(prometheus http.Handler) *MetricsHandler {
	if prometheus == nil {
		prometheus = http.NotFoundHandler()
	}
	return &MetricsHandler{prometheus: prometheus}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.prometheus.ServeHTTP(w, r)
}
