package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rehmanpranto/TutorTrack/internal/service"
)

// MetricsHandler exposes the Prometheus exposition endpoint.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Expose serves the registry contents.
func (h *MetricsHandler) Expose(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
