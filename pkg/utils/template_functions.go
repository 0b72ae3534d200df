package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"

	"ekoi-website/pkg/lang"
)

// AssetVersionFunc returns a cache-busting version for a static asset path,
// or "" when none is known.
type AssetVersionFunc func(path string) string

func GetTemplateFuncs(assetVersion AssetVersionFunc) template.FuncMap {
	return template.FuncMap{
		"truncate":   Truncate,
		"paragraphs": Paragraphs,

		"formatDate": func(t time.Time, format string) string {
			layouts := map[string]string{
				"short": "01/02/2006",
				"iso":   time.RFC3339,
				"date":  "2006-01-02",
			}
			if layout, ok := layouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},
		"localDate": LocalDate,

		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},

		"asset": func(assetPath string) string {
			if assetPath == "" {
				return ""
			}
			lowerPath := strings.ToLower(assetPath)
			if strings.HasPrefix(lowerPath, "http://") || strings.HasPrefix(lowerPath, "https://") || strings.HasPrefix(assetPath, "//") {
				return assetPath
			}
			if assetVersion == nil {
				return assetPath
			}
			version := assetVersion(assetPath)
			if version == "" {
				return assetPath
			}
			separator := "?"
			if strings.Contains(assetPath, "?") {
				separator = "&"
			}
			return assetPath + separator + "v=" + version
		},
	}
}

// Truncate shortens s to at most length runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, length int) string {
	runes := []rune(s)
	if length < 0 || len(runes) <= length {
		return s
	}
	return strings.TrimSpace(string(runes[:length])) + "..."
}

// Paragraphs splits plain text on blank lines. Lines inside a paragraph are
// joined with a space.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := strings.Split(text, "\n\n")

	result := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Fields(strings.ReplaceAll(block, "\n", " "))
		if len(lines) == 0 {
			continue
		}
		result = append(result, strings.Join(lines, " "))
	}
	return result
}

// LocalDate formats t the way readers of locale expect a calendar date.
func LocalDate(t time.Time, locale lang.Locale) string {
	if t.IsZero() {
		return ""
	}
	switch locale {
	case lang.Japanese:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	default:
		return t.Format("January 2, 2006")
	}
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}

func NormalizePath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			if parsed.Path != "" {
				trimmed = parsed.Path
			} else {
				trimmed = "/"
			}
		}
	}

	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}

	if cleaned != "/" && strings.HasSuffix(cleaned, "/") {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}

	return cleaned
}
