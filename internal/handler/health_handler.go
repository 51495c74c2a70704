package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check and service metadata endpoints.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Banner handles GET /
func (h *HealthHandler) Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "veridoc",
		"version": h.version,
		"endpoints": gin.H{
			"extract":        "POST /api/v1/extract",
			"extract_simple": "POST /api/v1/extract-simple",
			"models":         "GET /api/v1/models",
			"health":         "GET /health",
			"docs":           "GET /swagger/index.html",
		},
	})
}
