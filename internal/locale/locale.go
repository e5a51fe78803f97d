// Package locale selects language-specific field values from backing-store
// records. Localized fields follow the {Base}{LANG} naming convention with
// English as the canonical fallback: the oldest records carry the bare base
// name only, newer ones an explicit EN variant, so both are tried.
package locale

import "strings"

// Canonical is the fallback language for every localized field.
const Canonical = "EN"

// Supported lists every language code the API accepts.
var Supported = []string{
	"EN", "PL", "DE", "FR", "ES", "IT", "PT", "NL", "SE", "NO",
	"DK", "FI", "CZ", "SK", "HU", "RO", "BG", "GR", "HR", "SI",
	"LT", "LV", "EE", "UA", "TR",
}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(Supported))
	for _, code := range Supported {
		m[code] = true
	}
	return m
}()

// Normalize uppercases a requested language code and falls back to the
// canonical language when the code is empty or unrecognized.
func Normalize(lang string) string {
	code := strings.ToUpper(strings.TrimSpace(lang))
	if !supported[code] {
		return Canonical
	}
	return code
}

// IsSupported reports whether code (case-insensitive) is a known language.
func IsSupported(code string) bool {
	return supported[strings.ToUpper(strings.TrimSpace(code))]
}

// Field resolves a localized field value with the standard fallback chain:
// {base}{lang}, then {base}EN, then the bare base name. An empty result is
// permitted.
func Field(fields map[string]interface{}, base, lang string) string {
	value, _ := FieldSuffix(fields, base, lang)
	return value
}

// FieldSuffix resolves like Field and additionally reports the suffix that
// produced the value, so paired fields (tabular body and headers) can be
// read with the same language variant. The suffix is "" when the bare base
// name won or nothing matched.
func FieldSuffix(fields map[string]interface{}, base, lang string) (string, string) {
	lang = Normalize(lang)

	suffixes := []string{Canonical, ""}
	if lang != Canonical {
		suffixes = []string{lang, Canonical, ""}
	}

	for _, suffix := range suffixes {
		if value := Raw(fields, base, suffix); value != "" {
			return value, suffix
		}
	}
	return "", ""
}

// Raw reads the {base}{suffix} field verbatim, without any fallback.
func Raw(fields map[string]interface{}, base, suffix string) string {
	return Text(fields, base+suffix)
}

// Text extracts a field as a trimmed string. Non-string values (the store
// hands back numbers for numeric columns) are ignored.
func Text(fields map[string]interface{}, key string) string {
	if fields == nil {
		return ""
	}
	if value, ok := fields[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
