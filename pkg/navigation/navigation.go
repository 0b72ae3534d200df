package navigation

import (
	"strings"

	"ekoi-website/pkg/lang"
)

// Item represents a navigation link that can be rendered in shared layouts.
// Paths are locale-prefixed by the time an Item reaches a template.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Entry is the locale-independent definition of a navigation destination as it
// appears in the content file. Path is relative to the locale prefix.
type Entry struct {
	Label lang.TranslatedString `yaml:"label" json:"label"`
	Path  string                `yaml:"path" json:"path"`
}

// Link is an Item annotated with whether it matches the page being rendered.
type Link struct {
	Item
	Active bool `json:"active"`
}

// Section groups entries under a heading, as in the footer sitemap.
type Section struct {
	Title   lang.TranslatedString `yaml:"title" json:"title"`
	Entries []Entry               `yaml:"links" json:"links"`
}

// LocalizedSection is a Section resolved for one locale.
type LocalizedSection struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Model is the ordered primary navigation of the site. The order is fixed when
// the model is built and every rendering surface reads the same sequence.
type Model struct {
	fallback lang.Locale
	entries  []Entry
}

// NewModel copies entries so later changes to the caller's slice cannot
// reorder the navigation.
func NewModel(fallback lang.Locale, entries []Entry) *Model {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Model{fallback: fallback, entries: copied}
}

// Entries returns a copy of the configured entries.
func (m *Model) Entries() []Entry {
	if m == nil {
		return nil
	}
	return append([]Entry(nil), m.entries...)
}

// Items resolves the model for locale: labels are translated and paths are
// placed under the locale prefix.
func (m *Model) Items(locale lang.Locale) []Item {
	if m == nil {
		return nil
	}
	return LocalizeEntries(m.entries, locale, m.fallback)
}

// Links resolves the model for locale and marks the entry matching activePath.
// The home entry is only active on the home page itself; other entries are
// active on their own page and anything below it.
func (m *Model) Links(locale lang.Locale, activePath string) []Link {
	items := m.Items(locale)
	links := make([]Link, 0, len(items))
	for _, item := range items {
		links = append(links, Link{Item: item, Active: isActive(item.Path, activePath, locale)})
	}
	return links
}

// LocalizeEntry resolves a single entry for locale.
func LocalizeEntry(entry Entry, locale, fallback lang.Locale) Item {
	return Item{
		Label: entry.Label.In(locale, fallback),
		Path:  LocalizePath(locale, entry.Path),
	}
}

// LocalizeEntries resolves entries for locale, preserving order.
func LocalizeEntries(entries []Entry, locale, fallback lang.Locale) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, LocalizeEntry(entry, locale, fallback))
	}
	return items
}

// LocalizeSections resolves footer style sections for locale.
func LocalizeSections(sections []Section, locale, fallback lang.Locale) []LocalizedSection {
	result := make([]LocalizedSection, 0, len(sections))
	for _, section := range sections {
		result = append(result, LocalizedSection{
			Title: section.Title.In(locale, fallback),
			Items: LocalizeEntries(section.Entries, locale, fallback),
		})
	}
	return result
}

// LocalizePath prefixes a site-relative path with locale. Absolute URLs and
// fragments are returned unchanged.
func LocalizePath(locale lang.Locale, path string) string {
	trimmed := strings.TrimSpace(path)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(lower, "mailto:") {
		return trimmed
	}
	return lang.Localize(locale, trimmed)
}

func isActive(itemPath, activePath string, locale lang.Locale) bool {
	itemPath = strings.TrimSuffix(itemPath, "/")
	activePath = strings.TrimSuffix(activePath, "/")
	if itemPath == "" || activePath == "" {
		return false
	}
	if itemPath == activePath {
		return true
	}
	if itemPath == lang.Localize(locale, "/") {
		return false
	}
	return strings.HasPrefix(activePath, itemPath+"/")
}
