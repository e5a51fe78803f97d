package service

import (
	"context"

	"github.com/dataset-catalog-api/internal/cache"
	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// DatasetService defines single-record assembly operations
type DatasetService interface {
	Detail(ctx context.Context, id, lang string) (*models.DatasetDetail, error)
	Meta(ctx context.Context, id, lang string) (*models.DatasetDetail, error)
	Unified(ctx context.Context, dataID int64, lang string) (*models.UnifiedRecord, error)
}

// CatalogService defines collection assembly operations
type CatalogService interface {
	List(ctx context.Context, q models.ListQuery) (*models.DatasetList, error)
	News(ctx context.Context, country, category, lang string) (*models.NewsList, error)
	Countries(ctx context.Context) (*models.CountryList, error)
	Categories(ctx context.Context, country, lang string) (*models.CategoryList, error)
	ContentHubs(ctx context.Context, country, lang string) (*models.ContentHubList, error)
}

// CacheService defines operator-facing cache control
type CacheService interface {
	Refresh()
}

// Services holds all service interfaces
type Services struct {
	Dataset DatasetService
	Catalog CatalogService
	Cache   CacheService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, lookup *cache.Lookup, log zerolog.Logger) *Services {
	return &Services{
		Dataset: newDatasetService(repos, lookup, log),
		Catalog: newCatalogService(repos, lookup, log),
		Cache:   newCacheService(lookup, log),
	}
}
