package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/dataset-catalog-api/internal/config"
	"github.com/dataset-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SecretHeader carries the shared secret for operator endpoints
const SecretHeader = "X-Cache-Secret"

// CacheHandler handles operator cache control
type CacheHandler struct {
	services *service.Services
	secret   string
	log      zerolog.Logger
}

// NewCacheHandler creates a new CacheHandler
func NewCacheHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CacheHandler {
	return &CacheHandler{
		services: services,
		secret:   cfg.Cache.RefreshSecret,
		log:      log.With().Str("handler", "cache").Logger(),
	}
}

// Refresh handles POST /cache/refresh. Requires the shared-secret header;
// a mismatch is rejected before any cache state is touched.
func (h *CacheHandler) Refresh(c *gin.Context) {
	provided := c.GetHeader(SecretHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("Cache refresh rejected")
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	h.services.Cache.Refresh()
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
