package mocks

import (
	"context"

	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/service"
)

// MockDatasetService is a mock implementation of DatasetService
type MockDatasetService struct {
	Details  map[string]*models.DatasetDetail
	Unifieds map[int64]*models.UnifiedRecord
	Err      error
	LastLang string
}

func NewMockDatasetService() *MockDatasetService {
	return &MockDatasetService{
		Details:  make(map[string]*models.DatasetDetail),
		Unifieds: make(map[int64]*models.UnifiedRecord),
	}
}

func (m *MockDatasetService) Detail(ctx context.Context, id, lang string) (*models.DatasetDetail, error) {
	m.LastLang = lang
	if m.Err != nil {
		return nil, m.Err
	}
	if detail, ok := m.Details[id]; ok {
		return detail, nil
	}
	return nil, service.NewNotFound("dataset %s not found", id)
}

func (m *MockDatasetService) Meta(ctx context.Context, id, lang string) (*models.DatasetDetail, error) {
	detail, err := m.Detail(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	stripped := *detail
	stripped.Data = nil
	return &stripped, nil
}

func (m *MockDatasetService) Unified(ctx context.Context, dataID int64, lang string) (*models.UnifiedRecord, error) {
	m.LastLang = lang
	if m.Err != nil {
		return nil, m.Err
	}
	if unified, ok := m.Unifieds[dataID]; ok {
		return unified, nil
	}
	return nil, service.NewNotFound("record %d not found", dataID)
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	ListResult      *models.DatasetList
	NewsResult      *models.NewsList
	CountriesResult *models.CountryList
	CategoryResult  *models.CategoryList
	HubResult       *models.ContentHubList
	Err             error

	LastQuery    models.ListQuery
	LastCountry  string
	LastCategory string
}

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

func (m *MockCatalogService) List(ctx context.Context, q models.ListQuery) (*models.DatasetList, error) {
	m.LastQuery = q
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ListResult != nil {
		return m.ListResult, nil
	}
	return &models.DatasetList{Items: []models.ListItem{}}, nil
}

func (m *MockCatalogService) News(ctx context.Context, country, category, lang string) (*models.NewsList, error) {
	m.LastCountry = country
	m.LastCategory = category
	if m.Err != nil {
		return nil, m.Err
	}
	if m.NewsResult != nil {
		return m.NewsResult, nil
	}
	return &models.NewsList{Comments: []string{}}, nil
}

func (m *MockCatalogService) Countries(ctx context.Context) (*models.CountryList, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.CountriesResult != nil {
		return m.CountriesResult, nil
	}
	return &models.CountryList{Countries: []string{}}, nil
}

func (m *MockCatalogService) Categories(ctx context.Context, country, lang string) (*models.CategoryList, error) {
	m.LastCountry = country
	if m.Err != nil {
		return nil, m.Err
	}
	if m.CategoryResult != nil {
		return m.CategoryResult, nil
	}
	return &models.CategoryList{Categories: []string{}}, nil
}

func (m *MockCatalogService) ContentHubs(ctx context.Context, country, lang string) (*models.ContentHubList, error) {
	m.LastCountry = country
	if m.Err != nil {
		return nil, m.Err
	}
	if m.HubResult != nil {
		return m.HubResult, nil
	}
	return &models.ContentHubList{ContentHubs: []string{}}, nil
}

// MockCacheService is a mock implementation of CacheService
type MockCacheService struct {
	RefreshCalls int
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{}
}

func (m *MockCacheService) Refresh() {
	m.RefreshCalls++
}
