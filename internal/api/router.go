package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dataset-catalog-api/internal/config"
	"github.com/dataset-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	datasetHandler := NewDatasetHandler(services, log)
	catalogHandler := NewCatalogHandler(services, log)
	cacheHandler := NewCacheHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)

	// Single-record endpoints
	router.GET("/data/:id", datasetHandler.GetDetail)
	router.GET("/data/:id/meta", datasetHandler.GetMeta)
	router.GET("/record/:id", datasetHandler.GetUnified)

	// Collection endpoints
	router.GET("/datasets", catalogHandler.ListDatasets)
	router.GET("/countries", catalogHandler.GetCountries)
	router.GET("/categories/:country", catalogHandler.GetCategories)
	router.GET("/contenthubs/:country", catalogHandler.GetContentHubs)
	router.GET("/dataset/:country", catalogHandler.ListByCountry)
	router.GET("/dataset/:country/news", catalogHandler.GetNews)
	router.GET("/dataset/:country/:category", catalogHandler.ListByCountry)
	router.GET("/dataset/:country/:category/news", catalogHandler.GetNews)

	// Operator endpoints
	router.POST("/cache/refresh", cacheHandler.Refresh)

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "dataset-catalog-api",
	})
}

// respondError maps service error types onto HTTP statuses. Every error
// body is a single {"error": string} object.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var notFound *service.NotFoundError
	var invalid *service.InvalidInputError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Msg})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Upstream failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags each request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("request_id", c.GetString("request_id")).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Cache-Secret")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
