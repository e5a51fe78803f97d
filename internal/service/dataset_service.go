package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/dataset-catalog-api/internal/cache"
	"github.com/dataset-catalog-api/internal/locale"
	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/repository"
	"github.com/dataset-catalog-api/internal/tabular"
	"github.com/rs/zerolog"
)

// datasetService assembles single-record responses
type datasetService struct {
	repos  *repository.Repositories
	lookup *cache.Lookup
	log    zerolog.Logger
}

// newDatasetService creates a new DatasetService
func newDatasetService(repos *repository.Repositories, lookup *cache.Lookup, log zerolog.Logger) *datasetService {
	return &datasetService{
		repos:  repos,
		lookup: lookup,
		log:    log.With().Str("service", "dataset").Logger(),
	}
}

// Detail resolves a record and assembles the full response, tabular data
// and translations included.
func (s *datasetService) Detail(ctx context.Context, id, lang string) (*models.DatasetDetail, error) {
	return s.assemble(ctx, id, lang, true)
}

// Meta is the bandwidth-saving variant of Detail: no tabular parse.
func (s *datasetService) Meta(ctx context.Context, id, lang string) (*models.DatasetDetail, error) {
	return s.assemble(ctx, id, lang, false)
}

func (s *datasetService) assemble(ctx context.Context, id, lang string, includeData bool) (*models.DatasetDetail, error) {
	lang = locale.Normalize(lang)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewInvalidInput("empty record identifier")
	}

	// d-prefixed numeric ids live in the divisions table
	if dataID, ok := divisionID(id); ok {
		return s.assembleDivision(ctx, id, dataID, lang, includeData)
	}

	rec, err := s.resolveDataset(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFound("dataset %s not found", id)
	}
	return s.build(ctx, rec, nil, false, lang, includeData), nil
}

func (s *datasetService) assembleDivision(ctx context.Context, id string, dataID int64, lang string, includeData bool) (*models.DatasetDetail, error) {
	rec, err := s.repos.Division.GetByDataID(ctx, dataID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFound("division %s not found", id)
	}

	// Orphaned divisions degrade to partial metadata: the parent is only
	// needed to inherit shared fields the division omits.
	var parent *airtable.Record
	if parentID := firstLink(rec.Fields, "Dataset"); parentID != "" {
		parent, err = s.repos.Dataset.GetByRecordID(ctx, parentID)
		if err != nil {
			s.log.Warn().Err(err).Str("parent", parentID).Msg("Parent dataset fetch failed")
			parent = nil
		}
	}
	return s.build(ctx, rec, parent, true, lang, includeData), nil
}

// resolveDataset resolves a dataset by record id, numeric DataID or
// case-insensitive title, in that order of recognition.
func (s *datasetService) resolveDataset(ctx context.Context, id string) (*airtable.Record, error) {
	if strings.HasPrefix(id, "rec") {
		return s.repos.Dataset.GetByRecordID(ctx, id)
	}
	if dataID, err := strconv.ParseInt(id, 10, 64); err == nil {
		return s.repos.Dataset.GetByDataID(ctx, dataID)
	}
	return s.repos.Dataset.GetByTitle(ctx, id)
}

// build assembles the response for one resolved record. Every enrichment
// step (category, hubs, comment, metadata) is best-effort: a failed lookup
// leaves the field absent and never fails the primary record.
func (s *datasetService) build(ctx context.Context, rec, parent *airtable.Record, isDivision bool, lang string, includeData bool) *models.DatasetDetail {
	fields := rec.Fields

	meta := models.DetailMeta{
		Title:           locale.Field(fields, "Title", lang),
		Description:     locale.Field(fields, "Description", lang),
		UpdateFrequency: locale.Text(fields, "UpdateFrequency"),
		LastUpdate:      locale.Text(fields, "LastUpdate"),
		NextUpdateTime:  locale.Text(fields, "NextUpdateTime"),
	}

	if catID := firstLink(fields, "Category"); catID != "" {
		if categories, err := s.lookup.Categories(ctx); err == nil {
			if cat, ok := categories[catID]; ok {
				meta.Category = locale.Field(cat, "Secondary", lang)
				meta.Country = locale.Text(cat, "Country")
			}
		} else {
			s.log.Warn().Err(err).Msg("Category lookup failed")
		}
	}

	if hubIDs := linkList(fields, "ContentHubs"); len(hubIDs) > 0 {
		if hubs, err := s.lookup.ContentHubs(ctx); err == nil {
			var titles []string
			for _, hubID := range hubIDs {
				if hub, ok := hubs[hubID]; ok {
					if title := locale.Field(hub, "Title", lang); title != "" {
						titles = append(titles, title)
					}
				}
			}
			meta.ContentHubs = strings.Join(titles, ", ")
		} else {
			s.log.Warn().Err(err).Msg("Content-hub lookup failed")
		}
	}

	// Division records carry their AI comment directly; dataset records
	// link a separate comment record.
	commentFields := fields
	if !isDivision {
		commentFields = nil
		if commentID := firstLink(fields, "Comments"); commentID != "" {
			if comments, err := s.lookup.Comments(ctx); err == nil {
				commentFields = comments[commentID]
			} else {
				s.log.Warn().Err(err).Msg("Comment lookup failed")
			}
		}
	}
	meta.AIComment = locale.Field(commentFields, "AIComment", lang)

	metaFields := s.metadataFields(ctx, fields)
	applyMetadata(&meta, metaFields, lang)

	// Divisions inherit shared fields from the parent when they omit them
	if isDivision && parent != nil {
		if meta.UpdateFrequency == "" {
			meta.UpdateFrequency = locale.Text(parent.Fields, "UpdateFrequency")
		}
		if meta.SourceName == "" || meta.Unit == "" {
			parentMeta := s.metadataFields(ctx, parent.Fields)
			if meta.SourceName == "" {
				meta.SourceName = locale.Field(parentMeta, "SourceName", lang)
			}
			if meta.Unit == "" {
				meta.Unit = locale.Field(parentMeta, "Unit", lang)
			}
		}
	}

	detail := &models.DatasetDetail{
		ID:           rec.ID,
		Meta:         meta,
		Translations: translations(fields, commentFields, metaFields, lang),
	}

	if includeData {
		detail.Data = parseData(fields, lang)
	}
	return detail
}

// metadataFields fetches the linked metadata record's fields, best-effort
func (s *datasetService) metadataFields(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	metadataID := firstLink(fields, "Metadata")
	if metadataID == "" {
		return nil
	}
	rec, err := s.repos.Metadata.GetByRecordID(ctx, metadataID)
	if err != nil {
		s.log.Warn().Err(err).Str("metadata", metadataID).Msg("Metadata fetch failed")
		return nil
	}
	if rec == nil {
		return nil
	}
	return rec.Fields
}

// Unified joins a parent dataset with its division records and the merged
// comment list contributed by both.
func (s *datasetService) Unified(ctx context.Context, dataID int64, lang string) (*models.UnifiedRecord, error) {
	lang = locale.Normalize(lang)

	rec, err := s.repos.Dataset.GetByDataID(ctx, dataID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFound("record %d not found", dataID)
	}

	unified := &models.UnifiedRecord{
		ID:          rec.ID,
		Title:       locale.Field(rec.Fields, "Title", lang),
		Description: locale.Field(rec.Fields, "Description", lang),
		Data:        parseData(rec.Fields, lang),
		Divisions:   []models.UnifiedDivision{},
		Comments:    []string{},
	}

	if commentID := firstLink(rec.Fields, "Comments"); commentID != "" {
		if comments, err := s.lookup.Comments(ctx); err == nil {
			if comment := locale.Field(comments[commentID], "AIComment", lang); comment != "" {
				unified.Comments = append(unified.Comments, comment)
			}
		} else {
			s.log.Warn().Err(err).Msg("Comment lookup failed")
		}
	}

	divisions := s.lookup.Divisions(ctx)
	for _, divID := range linkedDivisions(divisions, rec.ID) {
		divFields := divisions[divID]
		unified.Divisions = append(unified.Divisions, models.UnifiedDivision{
			ID:          divID,
			Title:       locale.Field(divFields, "Title", lang),
			Description: locale.Field(divFields, "Description", lang),
			Data:        parseData(divFields, lang),
		})
		if comment := locale.Field(divFields, "AIComment", lang); comment != "" {
			unified.Comments = append(unified.Comments, comment)
		}
	}

	return unified, nil
}

// parseData parses the tabular payload using the Data field and its paired
// headers field. Headers and body always share the same language suffix.
func parseData(fields map[string]interface{}, lang string) []tabular.Row {
	body, suffix := locale.FieldSuffix(fields, "Data", lang)
	headers := locale.Raw(fields, "DataHeaders", suffix)
	if body == "" || headers == "" {
		return []tabular.Row{}
	}
	return tabular.Parse(headers, body)
}

// applyMetadata copies localized metadata-record fields onto the response
func applyMetadata(meta *models.DetailMeta, metaFields map[string]interface{}, lang string) {
	if metaFields == nil {
		return
	}
	meta.ResearchName = locale.Field(metaFields, "ResearchName", lang)
	meta.ResearchPurpose = locale.Field(metaFields, "ResearchPurpose", lang)
	meta.Methodology = locale.Field(metaFields, "Methodology", lang)
	meta.Definitions = locale.Field(metaFields, "Definitions", lang)
	meta.SourceName = locale.Field(metaFields, "SourceName", lang)
	meta.Unit = locale.Field(metaFields, "Unit", lang)
}

var metadataBases = []string{"ResearchName", "ResearchPurpose", "Methodology", "Definitions", "SourceName", "Unit"}

// translations gathers every non-empty localized variant not already
// surfaced in the main body: Title/Description/Data from the record,
// AIComment from wherever the comment lives, and the metadata fields.
func translations(fields, commentFields, metaFields map[string]interface{}, lang string) map[string]string {
	t := make(map[string]string)
	collectTranslations(t, fields, []string{"Title", "Description", "Data"}, lang)
	collectTranslations(t, commentFields, []string{"AIComment"}, lang)
	collectTranslations(t, metaFields, metadataBases, lang)
	return t
}

func collectTranslations(t map[string]string, fields map[string]interface{}, bases []string, lang string) {
	if fields == nil {
		return
	}
	for _, base := range bases {
		_, surfaced := locale.FieldSuffix(fields, base, lang)
		for _, code := range locale.Supported {
			if code == surfaced {
				continue
			}
			if value := locale.Raw(fields, base, code); value != "" {
				t[base+code] = value
			}
		}
	}
}

// divisionID recognizes a d-prefixed numeric identifier
func divisionID(id string) (int64, bool) {
	if len(id) < 2 || id[0] != 'd' {
		return 0, false
	}
	dataID, err := strconv.ParseInt(id[1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return dataID, true
}
