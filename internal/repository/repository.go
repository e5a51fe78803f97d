package repository

import (
	"context"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/dataset-catalog-api/internal/config"
)

// DatasetRepository defines read access to the primary dataset table
type DatasetRepository interface {
	GetByRecordID(ctx context.Context, id string) (*airtable.Record, error)
	GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error)
	GetByTitle(ctx context.Context, title string) (*airtable.Record, error)
	List(ctx context.Context, view, formula string) ([]airtable.Record, error)
}

// DivisionRepository defines read access to the division table
type DivisionRepository interface {
	GetByRecordID(ctx context.Context, id string) (*airtable.Record, error)
	GetByDataID(ctx context.Context, dataID int64) (*airtable.Record, error)
}

// MetadataRepository defines read access to the metadata table
type MetadataRepository interface {
	GetByRecordID(ctx context.Context, id string) (*airtable.Record, error)
}

// LookupRepository feeds the lookup cache with full table listings
type LookupRepository interface {
	FetchAll(ctx context.Context, table string) ([]airtable.Record, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Dataset  DatasetRepository
	Division DivisionRepository
	Metadata MetadataRepository
	Lookup   LookupRepository
}

// New creates all repositories over the given backing-store client
func New(client *airtable.Client, tables config.TableConfig) *Repositories {
	return &Repositories{
		Dataset:  NewDatasetRepo(client, tables.Datasets),
		Division: NewDivisionRepo(client, tables.Divisions),
		Metadata: NewMetadataRepo(client, tables.Metadata),
		Lookup:   NewLookupRepo(client),
	}
}
