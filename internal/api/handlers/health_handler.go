package handlers

import (
	"net/http"

	"github.com/JainamDedhia/Eduthon-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HealthHandler struct {
	store storage.ObjectStore
}

func NewHealthHandler(store storage.ObjectStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Info reports static service metadata so callers can discover the bucket and
// the available endpoints.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "S3 File Upload API",
		"bucket":  h.store.Bucket(),
		"endpoints": gin.H{
			"upload": "/upload",
			"health": "/health",
		},
	})
}

// Health probes the storage bucket. An unreachable bucket is a reportable
// state, not a request failure, so the status code stays 200 either way.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.CheckBucket(c.Request.Context()); err != nil {
		log.Warn().Err(err).Str("bucket", h.store.Bucket()).Msg("storage health check failed")
		c.JSON(http.StatusOK, gin.H{
			"status": "unhealthy",
			"bucket": h.store.Bucket(),
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"bucket":     h.store.Bucket(),
		"connection": "success",
	})
}
