package locale_test

import (
	"testing"

	"github.com/dataset-catalog-api/internal/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr", "FR"},
		{"FR", "FR"},
		{" pl ", "PL"},
		{"", "EN"},
		{"xx", "EN"},
		{"en", "EN"},
		{"klingon", "EN"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := locale.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestField_FallbackPriority(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
		lang   string
		want   string
	}{
		{
			name:   "requested language wins",
			fields: map[string]interface{}{"TitleFR": "fr", "TitleEN": "en", "Title": "bare"},
			lang:   "FR",
			want:   "fr",
		},
		{
			name:   "falls back to EN variant",
			fields: map[string]interface{}{"TitleEN": "en", "Title": "bare"},
			lang:   "FR",
			want:   "en",
		},
		{
			name:   "falls back to bare base name",
			fields: map[string]interface{}{"Title": "bare"},
			lang:   "FR",
			want:   "bare",
		},
		{
			name:   "EN request prefers explicit EN variant",
			fields: map[string]interface{}{"TitleEN": "en", "Title": "bare"},
			lang:   "EN",
			want:   "en",
		},
		{
			name:   "EN request works on oldest records",
			fields: map[string]interface{}{"Title": "bare"},
			lang:   "EN",
			want:   "bare",
		},
		{
			name:   "unknown language behaves like EN",
			fields: map[string]interface{}{"TitleEN": "en", "TitleFR": "fr"},
			lang:   "zz",
			want:   "en",
		},
		{
			name:   "empty result is permitted",
			fields: map[string]interface{}{"Description": "unrelated"},
			lang:   "FR",
			want:   "",
		},
		{
			name:   "empty variant is skipped",
			fields: map[string]interface{}{"TitleFR": "  ", "TitleEN": "en"},
			lang:   "FR",
			want:   "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locale.Field(tt.fields, "Title", tt.lang); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Fallback never returns an undefined result: for every supported language
// the resolver yields the language variant, the EN variant, the bare base
// name or the empty string.
func TestField_NeverUndefined(t *testing.T) {
	fields := map[string]interface{}{"TitlePL": "pl", "TitleEN": "en", "Title": "bare"}

	for _, lang := range locale.Supported {
		got := locale.Field(fields, "Title", lang)
		switch got {
		case "pl", "en", "bare":
		default:
			t.Errorf("Field(%q) = %q, not one of the defined fallbacks", lang, got)
		}
	}
}

func TestFieldSuffix_ReportsWinningSuffix(t *testing.T) {
	fields := map[string]interface{}{
		"DataPL":        "body-pl",
		"DataEN":        "body-en",
		"Data":          "body-bare",
		"DataHeadersPL": "h-pl",
	}

	value, suffix := locale.FieldSuffix(fields, "Data", "PL")
	if value != "body-pl" || suffix != "PL" {
		t.Errorf("FieldSuffix = (%q, %q), want (body-pl, PL)", value, suffix)
	}

	// The paired headers field must be read with the same suffix
	if headers := locale.Raw(fields, "DataHeaders", suffix); headers != "h-pl" {
		t.Errorf("Raw headers = %q, want h-pl", headers)
	}

	value, suffix = locale.FieldSuffix(fields, "Data", "DE")
	if value != "body-en" || suffix != "EN" {
		t.Errorf("FieldSuffix fallback = (%q, %q), want (body-en, EN)", value, suffix)
	}
}

func TestText_IgnoresNonStrings(t *testing.T) {
	fields := map[string]interface{}{"DataID": float64(42), "Title": " padded "}

	if got := locale.Text(fields, "DataID"); got != "" {
		t.Errorf("Text on numeric field = %q, want empty", got)
	}
	if got := locale.Text(fields, "Title"); got != "padded" {
		t.Errorf("Text = %q, want trimmed value", got)
	}
	if got := locale.Text(nil, "Title"); got != "" {
		t.Errorf("Text on nil fields = %q, want empty", got)
	}
}
