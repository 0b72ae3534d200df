package lang

import (
	"sort"
	"strings"
)

// TranslatedString holds one piece of copy per locale, keyed by tag. It is
// decoded directly from the content file, e.g. `{en: "News", ja: "ニュース"}`.
type TranslatedString map[Locale]string

// In returns the copy for locale, falling back to the fallback locale and then
// to any non-empty translation.
func (t TranslatedString) In(locale, fallback Locale) string {
	if value := strings.TrimSpace(t[locale]); value != "" {
		return value
	}
	if value := strings.TrimSpace(t[fallback]); value != "" {
		return value
	}
	keys := make([]string, 0, len(t))
	for code := range t {
		keys = append(keys, string(code))
	}
	sort.Strings(keys)
	for _, code := range keys {
		if trimmed := strings.TrimSpace(t[Locale(code)]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Missing lists the locales of supported that have no copy.
func (t TranslatedString) Missing(supported []Locale) []Locale {
	var missing []Locale
	for _, code := range supported {
		if strings.TrimSpace(t[code]) == "" {
			missing = append(missing, code)
		}
	}
	return missing
}
