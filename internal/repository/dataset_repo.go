package repository

import (
	"context"
	"errors"

	"github.com/dataset-catalog-api/internal/airtable"
)

// datasetRepo is the concrete implementation of DatasetRepository
type datasetRepo struct {
	client *airtable.Client
	table  string
}

// NewDatasetRepo creates a new dataset repository
func NewDatasetRepo(client *airtable.Client, table string) DatasetRepository {
	return &datasetRepo{client: client, table: table}
}

// GetByRecordID fetches one dataset by its backing-store record id.
// A missing record yields (nil, nil).
func (r *datasetRepo) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	rec, err := r.client.GetRecord(ctx, r.table, id)
	if errors.Is(err, airtable.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByDataID fetches one dataset by its numeric DataID field
func (r *datasetRepo) GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error) {
	return firstMatch(ctx, r.client, r.table, airtable.NumberEquals("DataID", dataID))
}

// GetByTitle fetches one dataset by case-insensitive title equality
func (r *datasetRepo) GetByTitle(ctx context.Context, title string) (*airtable.Record, error) {
	return firstMatch(ctx, r.client, r.table, airtable.EqualsFold("Title", title))
}

// List fetches datasets, optionally scoped to a view and a filter formula
func (r *datasetRepo) List(ctx context.Context, view, formula string) ([]airtable.Record, error) {
	return r.client.ListRecords(ctx, r.table, airtable.ListOptions{View: view, Formula: formula})
}

// firstMatch runs a filtered listing and returns the first record, or
// (nil, nil) when nothing matched.
func firstMatch(ctx context.Context, client *airtable.Client, table, formula string) (*airtable.Record, error) {
	records, err := client.ListRecords(ctx, table, airtable.ListOptions{Formula: formula})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
