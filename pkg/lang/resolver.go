package lang

import "strings"

// Resolver maps request paths onto locale-prefixed canonical paths. The
// supported set and default are fixed at construction.
type Resolver struct {
	def       Locale
	supported []Locale
}

// NewResolver builds a resolver for the given default and supported locales.
// The default is always part of the supported set.
func NewResolver(def Locale, supported []Locale) *Resolver {
	if def == "" {
		def = Default
	}
	list := make([]Locale, 0, len(supported)+1)
	list = append(list, def)
	for _, code := range supported {
		if code == "" || Contains(list, code) {
			continue
		}
		list = append(list, code)
	}
	return &Resolver{def: def, supported: list}
}

func (r *Resolver) Default() Locale {
	return r.def
}

// Supported returns a copy of the supported locales, default first.
func (r *Resolver) Supported() []Locale {
	return append([]Locale(nil), r.supported...)
}

func (r *Resolver) IsSupported(code Locale) bool {
	return Contains(r.supported, code)
}

func (r *Resolver) Resolve(path string) (Locale, string) {
	return Resolve(path, r.supported, r.def)
}

func (r *Resolver) Switch(currentPath string, next Locale) string {
	return SwitchLocale(currentPath, next, r.supported)
}

// Resolve determines the effective locale of path and its canonical form. A
// path whose first segment is a supported locale is already canonical and is
// returned unchanged. Any other path is placed under the default locale, with
// the root path mapping to "/" + def.
//
// Matching is case-sensitive and bounded by the segment separator, so "/en"
// and "/en/news" carry a prefix while "/english" does not. A content segment
// that equals a locale tag cannot be told apart from a prefix.
func Resolve(path string, supported []Locale, def Locale) (Locale, string) {
	if locale, ok := PathLocale(path, supported); ok {
		return locale, path
	}
	return def, Localize(def, path)
}

// PathLocale extracts the leading locale segment of path when it is one of
// supported.
func PathLocale(path string, supported []Locale) (Locale, bool) {
	segment, _, ok := splitLeadingSegment(path)
	if !ok {
		return "", false
	}
	candidate := Locale(segment)
	if !Contains(supported, candidate) {
		return "", false
	}
	return candidate, true
}

// Localize places path under locale: "/" becomes "/ja", "/products" becomes
// "/ja/products". It does not inspect path for an existing prefix.
func Localize(locale Locale, path string) string {
	if path == "" || path == "/" {
		return "/" + string(locale)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + string(locale) + path
}

// SwitchLocale replaces the leading locale segment of currentPath with next,
// keeping the remainder of the path so the same page is shown in the new
// language. A path without a supported leading locale is returned unchanged.
func SwitchLocale(currentPath string, next Locale, supported []Locale) string {
	segment, rest, ok := splitLeadingSegment(currentPath)
	if !ok || !Contains(supported, Locale(segment)) {
		return currentPath
	}
	return "/" + string(next) + rest
}

// splitLeadingSegment returns the first path segment of p and everything after
// it, including the separating slash. ok is false when p does not start with
// "/" or the first segment is empty.
func splitLeadingSegment(p string) (segment, rest string, ok bool) {
	if !strings.HasPrefix(p, "/") {
		return "", "", false
	}
	trimmed := p[1:]
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		segment, rest = trimmed[:idx], trimmed[idx:]
	} else {
		segment = trimmed
	}
	if segment == "" {
		return "", "", false
	}
	return segment, rest, true
}
