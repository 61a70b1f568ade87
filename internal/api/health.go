package api

import (
	"net/http"
	"time"

	"github.com/medtimer/medtimer-server/internal/api/respond"
)

// HealthHandler reports the cached service health.
type HealthHandler struct {
	isHealthy func() bool
}

// NewHealthHandler binds the handler to a health source, usually
// health.ServiceHealthChecker.IsHealthy.
func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

// CheckHealth handles GET /health/
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy != nil && h.isHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
