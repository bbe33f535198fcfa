package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadbroker/internal/config"
)

// HealthHandler handles health check and environment report endpoints.
type HealthHandler struct {
	storage *config.StorageConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(storage *config.StorageConfig) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := h.storage.Destination(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "storage destination not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// EnvCheck handles GET /api/env-check
// @Summary Report which settings are present
// @Description Reports presence only; secret values are never returned
// @Tags health
// @Produce json
// @Success 200 {object} EnvCheckResponse
// @Router /env-check [get]
func (h *HealthHandler) EnvCheck(c *gin.Context) {
	c.JSON(http.StatusOK, EnvCheckResponse{
		Provider:      h.storage.Provider,
		HasAccessKey:  h.storage.AccessKey != "",
		HasSecretKey:  h.storage.SecretKey != "",
		HasBucket:     h.storage.Bucket != "",
		Region:        h.storage.Region,
		Encryption:    h.storage.Encryption,
		HasEndpoint:   h.storage.Endpoint != "",
		PresignExpiry: int64(h.storage.PresignExpiry.Seconds()),
	})
}
