package lang

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Locale is a language tag used both for translated copy and as the leading
// URL segment of every canonical page path.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"
)

// Default represents the fallback locale used when no explicit locale is
// configured.
const Default = English

var errEmptyCode = errors.New("language code cannot be empty")

func (l Locale) String() string {
	return string(l)
}

// Label is the short uppercase form shown by the language switcher ("EN", "JA").
func (l Locale) Label() string {
	return strings.ToUpper(string(l))
}

// Normalize validates the provided language code and returns it in a
// canonicalised form (lowercase language, uppercase region). Supported formats
// follow the common `ll` or `ll-RR` pattern where `l` is an alphabetic
// character and `R` is the region designator.
func Normalize(code string) (Locale, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", errEmptyCode
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid language code %q", code)
	}

	language := strings.ToLower(parts[0])
	if len(language) < 2 || len(language) > 8 {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	for _, r := range language {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language code %q", code)
		}
	}

	if len(parts) == 1 {
		return Locale(language), nil
	}

	region := parts[1]
	if len(region) < 2 || len(region) > 3 {
		return "", fmt.Errorf("invalid language region in %q", code)
	}
	for _, r := range region {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language region in %q", code)
		}
	}

	return Locale(language + "-" + strings.ToUpper(region)), nil
}

// NormalizeList normalises a slice of language codes, removing duplicates while
// preserving the order of first occurrence. Empty entries are ignored. If any
// code fails validation the returned slice will be empty alongside the error.
func NormalizeList(codes []string) ([]Locale, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	seen := make(map[Locale]struct{}, len(codes))
	result := make([]Locale, 0, len(codes))

	for _, raw := range codes {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		normalized, err := Normalize(raw)
		if err != nil {
			return nil, err
		}

		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	return result, nil
}

// EnsureDefault normalises the provided default locale and list of supported
// locales. The default must be a member of the supported list; when the list
// is empty it becomes the only supported locale. The returned list keeps the
// configured order with the default moved to the front.
func EnsureDefault(defaultCode string, supported []string) (Locale, []Locale, error) {
	normalizedDefault, err := Normalize(defaultCode)
	if err != nil {
		return "", nil, fmt.Errorf("invalid default locale %q: %w", defaultCode, err)
	}

	normalizedSupported, err := NormalizeList(supported)
	if err != nil {
		return "", nil, err
	}

	if len(normalizedSupported) > 0 && !Contains(normalizedSupported, normalizedDefault) {
		return "", nil, fmt.Errorf("default locale %q is not in the supported set %v", normalizedDefault, normalizedSupported)
	}

	result := make([]Locale, 0, len(normalizedSupported)+1)
	result = append(result, normalizedDefault)
	for _, code := range normalizedSupported {
		if code == normalizedDefault {
			continue
		}
		result = append(result, code)
	}

	return normalizedDefault, result, nil
}

// Contains reports whether code is one of the listed locales. The comparison is
// case-sensitive.
func Contains(list []Locale, code Locale) bool {
	for _, item := range list {
		if item == code {
			return true
		}
	}
	return false
}

// DecodeList attempts to parse the provided value as a JSON array of language
// codes. If JSON decoding fails the value is treated as a comma separated list
// instead. The returned slice is not normalised.
func DecodeList(value string) ([]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	var codes []string
	if err := json.Unmarshal([]byte(trimmed), &codes); err == nil {
		return codes, nil
	}

	parts := strings.Split(trimmed, ",")
	codes = make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			codes = append(codes, token)
		}
	}
	if len(codes) == 0 {
		return nil, errors.New("no language codes found")
	}
	return codes, nil
}
