package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehmanpranto/TutorTrack/pkg/response"
)

type schemaService interface {
	Init(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
}

// SystemHandler exposes the health probe and the schema initializer.
type SystemHandler struct {
	schema schemaService
	env    string
}

// NewSystemHandler constructs the handler.
func NewSystemHandler(schema schemaService, env string) *SystemHandler {
	return &SystemHandler{schema: schema, env: env}
}

// Health godoc
// @Summary Environment and database connectivity probe
// @Tags System
// @Produce json
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	overall := "ok"
	dbStatus := "connected"
	status := http.StatusOK
	if err := h.schema.Ping(c.Request.Context()); err != nil {
		overall = "error"
		dbStatus = "error"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"environment": h.env,
		"database":    dbStatus,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// InitDB godoc
// @Summary Idempotently create tables, view, and default student
// @Tags System
// @Produce json
// @Router /init-db [get]
func (h *SystemHandler) InitDB(c *gin.Context) {
	already, err := h.schema.Init(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if already {
		response.Message(c, http.StatusOK, "database already initialized")
		return
	}
	response.Message(c, http.StatusOK, "database initialized successfully")
}
