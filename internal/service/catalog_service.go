package service

import (
	"context"
	"sort"
	"time"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/dataset-catalog-api/internal/cache"
	"github.com/dataset-catalog-api/internal/locale"
	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// catalogService assembles collection responses
type catalogService struct {
	repos  *repository.Repositories
	lookup *cache.Lookup
	log    zerolog.Logger
}

// newCatalogService creates a new CatalogService
func newCatalogService(repos *repository.Repositories, lookup *cache.Lookup, log zerolog.Logger) *catalogService {
	return &catalogService{
		repos:  repos,
		lookup: lookup,
		log:    log.With().Str("service", "catalog").Logger(),
	}
}

// List fetches datasets scoped by country view and category/content-hub
// filters. Filter resolution is fatal (404 naming the filter value);
// category-name enrichment on items is best-effort.
func (s *catalogService) List(ctx context.Context, q models.ListQuery) (*models.DatasetList, error) {
	lang := locale.Normalize(q.Lang)
	country := CountryDisplayName(q.Country)

	records, categories, err := s.fetchScoped(ctx, country, q.Category, q.ContentHub)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListItem, 0, len(records))
	for _, rec := range records {
		if locale.Field(rec.Fields, "Title", locale.Canonical) == "" {
			continue
		}

		item := models.ListItem{
			ID: rec.ID,
			Meta: models.ListItemMeta{
				Title:          locale.Field(rec.Fields, "Title", lang),
				Description:    locale.Field(rec.Fields, "Description", lang),
				LastUpdate:     locale.Text(rec.Fields, "LastUpdate"),
				NextUpdateTime: locale.Text(rec.Fields, "NextUpdateTime"),
			},
		}
		if catID := firstLink(rec.Fields, "Category"); catID != "" && categories != nil {
			if cat, ok := categories[catID]; ok {
				item.Meta.Category = locale.Field(cat, "Secondary", lang)
				item.Meta.Country = locale.Text(cat, "Country")
			}
		}
		items = append(items, item)
	}

	sortByLastUpdate(items)
	return &models.DatasetList{Count: len(items), Items: items}, nil
}

// News collects the localized AI comments of qualifying records and their
// linked divisions, omitting empty comments.
func (s *catalogService) News(ctx context.Context, country, category, lang string) (*models.NewsList, error) {
	lang = locale.Normalize(lang)
	canonical := CountryDisplayName(country)

	records, _, err := s.fetchScoped(ctx, canonical, category, "")
	if err != nil {
		return nil, err
	}

	// Comments are the payload here, not enrichment: a failed load is fatal.
	comments, err := s.lookup.Comments(ctx)
	if err != nil {
		return nil, err
	}
	divisions := s.lookup.Divisions(ctx)

	news := make([]string, 0, len(records))
	for _, rec := range records {
		if locale.Field(rec.Fields, "Title", locale.Canonical) == "" {
			continue
		}
		if commentID := firstLink(rec.Fields, "Comments"); commentID != "" {
			if comment := locale.Field(comments[commentID], "AIComment", lang); comment != "" {
				news = append(news, comment)
			}
		}
		for _, divID := range linkedDivisions(divisions, rec.ID) {
			if comment := locale.Field(divisions[divID], "AIComment", lang); comment != "" {
				news = append(news, comment)
			}
		}
	}

	return &models.NewsList{Count: len(news), Comments: news}, nil
}

// Countries lists the distinct canonical country names known to the
// category table.
func (s *catalogService) Countries(ctx context.Context) (*models.CountryList, error) {
	categories, err := s.lookup.Categories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	countries := make([]string, 0, len(categories))
	for _, fields := range categories {
		country := locale.Text(fields, "Country")
		if country == "" || seen[country] {
			continue
		}
		seen[country] = true
		countries = append(countries, country)
	}
	sort.Strings(countries)

	return &models.CountryList{Count: len(countries), Countries: countries}, nil
}

// Categories lists the localized category names available for a country
func (s *catalogService) Categories(ctx context.Context, country, lang string) (*models.CategoryList, error) {
	lang = locale.Normalize(lang)
	canonical := CountryDisplayName(country)

	categories, err := s.lookup.Categories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, id := range sortedKeys(categories) {
		fields := categories[id]
		if !equalFold(locale.Text(fields, "Country"), canonical) {
			continue
		}
		name := locale.Field(fields, "Secondary", lang)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	return &models.CategoryList{Count: len(names), Categories: names}, nil
}

// ContentHubs lists the localized content-hub titles for a country
func (s *catalogService) ContentHubs(ctx context.Context, country, lang string) (*models.ContentHubList, error) {
	lang = locale.Normalize(lang)
	canonical := CountryDisplayName(country)

	hubs, err := s.lookup.ContentHubs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var titles []string
	for _, id := range sortedKeys(hubs) {
		fields := hubs[id]
		if !equalFold(locale.Text(fields, "Country"), canonical) {
			continue
		}
		title := locale.Field(fields, "Title", lang)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	sort.Strings(titles)

	return &models.ContentHubList{Count: len(titles), ContentHubs: titles}, nil
}

// fetchScoped lists dataset records scoped to a country view with the
// category and content-hub filters resolved to record ids and combined
// with logical AND. The categories sub-cache is returned for item
// enrichment; it is nil when its load failed and no category filter
// required it.
func (s *catalogService) fetchScoped(ctx context.Context, country, category, contentHub string) ([]airtable.Record, cache.Fields, error) {
	categories, catErr := s.lookup.Categories(ctx)

	var formulas []string
	if category != "" {
		if catErr != nil {
			return nil, nil, catErr
		}
		catID, ok := categoryID(categories, category, country)
		if !ok {
			return nil, nil, NewNotFound("category %q not found for country %q", category, country)
		}
		formulas = append(formulas, airtable.FindInJoined("Category", catID))
	}
	if contentHub != "" {
		hubs, err := s.lookup.ContentHubs(ctx)
		if err != nil {
			return nil, nil, err
		}
		hubID, ok := contentHubID(hubs, contentHub)
		if !ok {
			return nil, nil, NewNotFound("content hub %q not found", contentHub)
		}
		formulas = append(formulas, airtable.FindInJoined("ContentHubs", hubID))
	}

	records, err := s.repos.Dataset.List(ctx, country, airtable.And(formulas...))
	if err != nil {
		return nil, nil, err
	}
	if catErr != nil {
		s.log.Warn().Err(catErr).Msg("Category enrichment unavailable")
		categories = nil
	}
	return records, categories, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
	"2006/01/02",
}

// parseDate interprets a lastUpdate value as a calendar date. Unparseable
// values yield the zero time, which sorts as oldest.
func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sortByLastUpdate orders items newest-first, ties broken by record id
func sortByLastUpdate(items []models.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := parseDate(items[i].Meta.LastUpdate), parseDate(items[j].Meta.LastUpdate)
		if ti.Equal(tj) {
			return items[i].ID < items[j].ID
		}
		return ti.After(tj)
	})
}
