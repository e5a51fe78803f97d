package repository

import (
	"context"
	"errors"

	"github.com/dataset-catalog-api/internal/airtable"
)

// divisionRepo is the concrete implementation of DivisionRepository
type divisionRepo struct {
	client *airtable.Client
	table  string
}

// NewDivisionRepo creates a new division repository
func NewDivisionRepo(client *airtable.Client, table string) DivisionRepository {
	return &divisionRepo{client: client, table: table}
}

// GetByRecordID fetches one division by its backing-store record id.
// A missing record yields (nil, nil).
func (r *divisionRepo) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	rec, err := r.client.GetRecord(ctx, r.table, id)
	if errors.Is(err, airtable.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByDataID fetches one division by its numeric DataID field
func (r *divisionRepo) GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error) {
	return firstMatch(ctx, r.client, r.table, airtable.NumberEquals("DataID", dataID))
}
