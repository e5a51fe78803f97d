package repository

import (
	"context"
	"errors"

	"github.com/dataset-catalog-api/internal/airtable"
)

// metadataRepo is the concrete implementation of MetadataRepository
type metadataRepo struct {
	client *airtable.Client
	table  string
}

// NewMetadataRepo creates a new metadata repository
func NewMetadataRepo(client *airtable.Client, table string) MetadataRepository {
	return &metadataRepo{client: client, table: table}
}

// GetByRecordID fetches one metadata record by its backing-store record id.
// A missing record yields (nil, nil).
func (r *metadataRepo) GetByRecordID(ctx context.Context, id string) (*airtable.Record, error) {
	rec, err := r.client.GetRecord(ctx, r.table, id)
	if errors.Is(err, airtable.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
