package repository

import (
	"context"

	"github.com/dataset-catalog-api/internal/airtable"
)

// lookupRepo feeds the lookup cache with full table listings
type lookupRepo struct {
	client *airtable.Client
}

// NewLookupRepo creates a new lookup repository
func NewLookupRepo(client *airtable.Client) LookupRepository {
	return &lookupRepo{client: client}
}

// FetchAll lists every record of a table
func (r *lookupRepo) FetchAll(ctx context.Context, table string) ([]airtable.Record, error) {
	return r.client.ListRecords(ctx, table, airtable.ListOptions{})
}
