package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/dataset-catalog-api/internal/airtable"
)

// MockDatasetRepository is a mock implementation of DatasetRepository
type MockDatasetRepository struct {
	Records     map[string]*airtable.Record
	ListResult  []airtable.Record
	ListErr     error
	GetErr      error
	LastView    string
	LastFormula string
	ListCalls   int
}

func NewMockDatasetRepository() *MockDatasetRepository {
	return &MockDatasetRepository{
		Records: make(map[string]*airtable.Record),
	}
}

func (m *MockDatasetRepository) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records[id], nil
}

func (m *MockDatasetRepository) GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, id := range m.sortedIDs() {
		rec := m.Records[id]
		if n, ok := rec.Fields["DataID"].(float64); ok && int64(n) == dataID {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *MockDatasetRepository) GetByTitle(ctx context.Context, title string) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, id := range m.sortedIDs() {
		rec := m.Records[id]
		if t, ok := rec.Fields["Title"].(string); ok && strings.EqualFold(t, title) {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *MockDatasetRepository) List(ctx context.Context, view, formula string) ([]airtable.Record, error) {
	m.ListCalls++
	m.LastView = view
	m.LastFormula = formula
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockDatasetRepository) sortedIDs() []string {
	ids := make([]string, 0, len(m.Records))
	for id := range m.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MockDivisionRepository is a mock implementation of DivisionRepository
type MockDivisionRepository struct {
	Records map[string]*airtable.Record
	GetErr  error
}

func NewMockDivisionRepository() *MockDivisionRepository {
	return &MockDivisionRepository{
		Records: make(map[string]*airtable.Record),
	}
}

func (m *MockDivisionRepository) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records[id], nil
}

func (m *MockDivisionRepository) GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	ids := make([]string, 0, len(m.Records))
	for id := range m.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		rec := m.Records[id]
		if n, ok := rec.Fields["DataID"].(float64); ok && int64(n) == dataID {
			return rec, nil
		}
	}
	return nil, nil
}

// MockMetadataRepository is a mock implementation of MetadataRepository
type MockMetadataRepository struct {
	Records map[string]*airtable.Record
	GetErr  error
}

func NewMockMetadataRepository() *MockMetadataRepository {
	return &MockMetadataRepository{
		Records: make(map[string]*airtable.Record),
	}
}

func (m *MockMetadataRepository) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records[id], nil
}

// MockFetcher is a mock table fetcher for the lookup cache and the
// LookupRepository interface
type MockFetcher struct {
	Tables map[string][]airtable.Record
	Errors map[string]error
	Calls  map[string]int
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Tables: make(map[string][]airtable.Record),
		Errors: make(map[string]error),
		Calls:  make(map[string]int),
	}
}

func (m *MockFetcher) FetchAll(ctx context.Context, table string) ([]airtable.Record, error) {
	m.Calls[table]++
	if err := m.Errors[table]; err != nil {
		return nil, err
	}
	return m.Tables[table], nil
}
