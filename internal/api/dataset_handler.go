package api

import (
	"net/http"
	"strconv"

	"github.com/dataset-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DatasetHandler handles single-record endpoints
type DatasetHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewDatasetHandler creates a new DatasetHandler
func NewDatasetHandler(services *service.Services, log zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		services: services,
		log:      log.With().Str("handler", "dataset").Logger(),
	}
}

// GetDetail handles GET /data/:id?lang=
// The id may be a backing-store record id, a bare DataID number, a
// d-prefixed division number or a dataset title.
func (h *DatasetHandler) GetDetail(c *gin.Context) {
	detail, err := h.services.Dataset.Detail(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetMeta handles GET /data/:id/meta?lang= — the detail response without
// the tabular data array.
func (h *DatasetHandler) GetMeta(c *gin.Context) {
	detail, err := h.services.Dataset.Meta(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetUnified handles GET /record/:id?lang= — the cross-table join of a
// dataset with its divisions.
func (h *DatasetHandler) GetUnified(c *gin.Context) {
	id := c.Param("id")
	dataID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record id must be numeric, got " + strconv.Quote(id)})
		return
	}

	unified, err := h.services.Dataset.Unified(c.Request.Context(), dataID, c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, unified)
}
