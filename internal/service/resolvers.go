package service

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dataset-catalog-api/internal/cache"
	"github.com/dataset-catalog-api/internal/locale"
)

// CountryDisplayName canonicalizes a free-text country parameter to the
// form used in Category records. The same canonicalization is applied
// everywhere a country is matched.
func CountryDisplayName(param string) string {
	p := strings.ToLower(strings.TrimSpace(param))
	switch p {
	case "":
		return ""
	case "eu":
		return "European Union"
	case "poland":
		return "Poland"
	}
	runes := []rune(p)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// categoryID scans the categories sub-cache for a record matching the
// given category name and country, both case/whitespace-insensitive.
// Uniqueness of (country, category) is assumed upstream; the scan is
// ordered by record id so a duplicate still resolves deterministically.
func categoryID(categories cache.Fields, categoryName, countryName string) (string, bool) {
	for _, id := range sortedKeys(categories) {
		fields := categories[id]
		if !equalFold(locale.Text(fields, "Country"), countryName) {
			continue
		}
		if equalFold(locale.Field(fields, "Secondary", locale.Canonical), categoryName) {
			return id, true
		}
	}
	return "", false
}

// contentHubID scans the content-hub sub-cache for a record whose
// canonical English title or primary display title matches, case-insensitive.
func contentHubID(hubs cache.Fields, hubTitle string) (string, bool) {
	for _, id := range sortedKeys(hubs) {
		fields := hubs[id]
		if equalFold(locale.Raw(fields, "Title", locale.Canonical), hubTitle) {
			return id, true
		}
		if equalFold(locale.Raw(fields, "Title", ""), hubTitle) {
			return id, true
		}
	}
	return "", false
}

// linkedDivisions returns the ids of division records whose parent link
// contains the given dataset record id.
func linkedDivisions(divisions cache.Fields, datasetRecordID string) []string {
	var linked []string
	for _, id := range sortedKeys(divisions) {
		for _, parent := range linkList(divisions[id], "Dataset") {
			if parent == datasetRecordID {
				linked = append(linked, id)
				break
			}
		}
	}
	return linked
}

// linkList extracts a linked-record id list field
func linkList(fields map[string]interface{}, key string) []string {
	raw, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// firstLink extracts the head of a linked-record list. Category, Metadata
// and Comments links are at-most-one relationships; an empty list means
// the relationship is unset.
func firstLink(fields map[string]interface{}, key string) string {
	if ids := linkList(fields, key); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func sortedKeys(fields cache.Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
