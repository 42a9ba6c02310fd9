package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"crimescope/internal/config"
)

// HealthHandler serves liveness information.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// ServeHTTP handles GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"service": config.AppName,
		"version": config.AppVersion,
		"uptime":  time.Since(h.startedAt).String(),
		"time":    time.Now().Format(time.RFC3339),
	})
}
