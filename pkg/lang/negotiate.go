package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Negotiate picks the supported locale that best matches an Accept-Language
// header. The first entry of supported acts as the fallback, so callers pass
// the default locale first. An empty or unparsable header yields def.
func Negotiate(acceptHeader string, supported []Locale, def Locale) Locale {
	if strings.TrimSpace(acceptHeader) == "" || len(supported) == 0 {
		return def
	}

	preferred, _, err := language.ParseAcceptLanguage(acceptHeader)
	if err != nil || len(preferred) == 0 {
		return def
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(string(code))
		if err != nil {
			tag = language.Und
		}
		tags = append(tags, tag)
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return def
	}
	return supported[index]
}
