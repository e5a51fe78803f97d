package models

import "github.com/dataset-catalog-api/internal/tabular"

// ListItemMeta is the per-item metadata on list endpoints
type ListItemMeta struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Country        string `json:"country,omitempty"`
	LastUpdate     string `json:"lastUpdate"`
	NextUpdateTime string `json:"nextUpdateTime"`
}

// ListItem is one entry of a dataset list response
type ListItem struct {
	ID   string       `json:"id"`
	Meta ListItemMeta `json:"meta"`
}

// DatasetList is the list endpoint response shape
type DatasetList struct {
	Count int        `json:"count"`
	Items []ListItem `json:"items"`
}

// DetailMeta carries every resolved, localized field of a single record.
// Enrichment fields (category, hubs, comment, metadata) are best-effort
// and omitted when absent.
type DetailMeta struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category,omitempty"`
	Country         string `json:"country,omitempty"`
	ContentHubs     string `json:"contentHubs,omitempty"`
	UpdateFrequency string `json:"updateFrequency,omitempty"`
	LastUpdate      string `json:"lastUpdate,omitempty"`
	NextUpdateTime  string `json:"nextUpdateTime,omitempty"`
	AIComment       string `json:"aiComment,omitempty"`
	ResearchName    string `json:"researchName,omitempty"`
	ResearchPurpose string `json:"researchPurpose,omitempty"`
	Methodology     string `json:"methodology,omitempty"`
	Definitions     string `json:"definitions,omitempty"`
	SourceName      string `json:"sourceName,omitempty"`
	Unit            string `json:"unit,omitempty"`
}

// DatasetDetail is the single-record response shape. Data and Translations
// are omitted on the metadata-only variant.
type DatasetDetail struct {
	ID           string            `json:"id"`
	Meta         DetailMeta        `json:"meta"`
	Data         []tabular.Row     `json:"data,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
}

// CountryList is the /countries response shape
type CountryList struct {
	Count     int      `json:"count"`
	Countries []string `json:"countries"`
}

// CategoryList is the /categories/{country} response shape
type CategoryList struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

// ContentHubList is the /contenthubs/{country} response shape
type ContentHubList struct {
	Count       int      `json:"count"`
	ContentHubs []string `json:"contentHubs"`
}

// NewsList is the news endpoint response shape
type NewsList struct {
	Count    int      `json:"count"`
	Comments []string `json:"comments"`
}

// UnifiedDivision is one division inside a unified cross-table record
type UnifiedDivision struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Data        []tabular.Row `json:"data,omitempty"`
}

// UnifiedRecord joins a parent dataset with its divisions and the merged
// comment list contributed by both
type UnifiedRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Data        []tabular.Row     `json:"data,omitempty"`
	Divisions   []UnifiedDivision `json:"divisions"`
	Comments    []string          `json:"comments"`
}

// ListQuery captures the filters accepted by list endpoints
type ListQuery struct {
	Country    string
	Category   string
	ContentHub string
	Lang       string
}
