// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/JainamDedhia/Eduthon-backend/internal/api/handlers"
	"github.com/JainamDedhia/Eduthon-backend/internal/api/middleware"
	"github.com/JainamDedhia/Eduthon-backend/internal/service"
	"github.com/JainamDedhia/Eduthon-backend/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	UploadService *service.UploadService
	Store         storage.ObjectStore
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
	if allowAll || len(normalizedOrigins) == 0 {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = normalizedOrigins
	}
	router.Use(cors.New(corsConfig))

	// Routes are served from the root; the paths are the public contract.
	uploadHandler := handlers.NewUploadHandler(services.UploadService)
	healthHandler := handlers.NewHealthHandler(services.Store)

	router.GET("/", healthHandler.Info)
	router.GET("/health", healthHandler.Health)
	router.POST("/upload", uploadHandler.Upload)
	router.POST("/upload-multiple", uploadHandler.UploadMultiple)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
