package api

import (
	"net/http"

	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CatalogHandler handles collection endpoints
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// ListDatasets handles GET /datasets?country=&category=&contentHub=&lang=
func (h *CatalogHandler) ListDatasets(c *gin.Context) {
	list, err := h.services.Catalog.List(c.Request.Context(), models.ListQuery{
		Country:    c.Query("country"),
		Category:   c.Query("category"),
		ContentHub: c.Query("contentHub"),
		Lang:       c.Query("lang"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListByCountry handles GET /dataset/:country and
// GET /dataset/:country/:category, both with ?lang=&contentHub=
func (h *CatalogHandler) ListByCountry(c *gin.Context) {
	list, err := h.services.Catalog.List(c.Request.Context(), models.ListQuery{
		Country:    c.Param("country"),
		Category:   c.Param("category"),
		ContentHub: c.Query("contentHub"),
		Lang:       c.Query("lang"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetNews handles GET /dataset/:country/news and
// GET /dataset/:country/:category/news
func (h *CatalogHandler) GetNews(c *gin.Context) {
	news, err := h.services.Catalog.News(c.Request.Context(), c.Param("country"), c.Param("category"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

// GetCountries handles GET /countries
func (h *CatalogHandler) GetCountries(c *gin.Context) {
	countries, err := h.services.Catalog.Countries(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

// GetCategories handles GET /categories/:country?lang=
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.services.Catalog.Categories(c.Request.Context(), c.Param("country"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetContentHubs handles GET /contenthubs/:country?lang=
func (h *CatalogHandler) GetContentHubs(c *gin.Context) {
	hubs, err := h.services.Catalog.ContentHubs(c.Request.Context(), c.Param("country"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hubs)
}
