package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ekoi-website/pkg/lang"
)

func TestLoadEmbeddedSite(t *testing.T) {
	site, err := Load("")
	if err != nil {
		t.Fatalf("failed to load embedded content: %v", err)
	}

	paths := make([]string, 0, len(site.Navigation))
	for _, entry := range site.Navigation {
		paths = append(paths, entry.Path)
	}
	expected := "/,/products,/solutions,/why-us,/news,/contact"
	if got := strings.Join(paths, ","); got != expected {
		t.Fatalf("unexpected navigation order %s", got)
	}

	for _, entry := range site.Navigation {
		if missing := entry.Label.Missing([]lang.Locale{lang.English, lang.Japanese}); len(missing) > 0 {
			t.Errorf("navigation entry %s is missing translations for %v", entry.Path, missing)
		}
	}

	if len(site.FeaturedProducts()) == 0 {
		t.Fatalf("expected featured products")
	}
	if _, ok := site.Product("h100"); !ok {
		t.Fatalf("expected h100 product")
	}
	if _, ok := site.Pages["privacy"]; !ok {
		t.Fatalf("expected privacy page")
	}
}

func TestNewsSortedNewestFirst(t *testing.T) {
	site, err := Load("")
	if err != nil {
		t.Fatalf("failed to load embedded content: %v", err)
	}

	for i := 1; i < len(site.News); i++ {
		if site.News[i].Date.After(site.News[i-1].Date) {
			t.Fatalf("news not sorted newest first at index %d", i)
		}
	}

	if latest := site.LatestNews(2); len(latest) != 2 || latest[0].Slug != site.News[0].Slug {
		t.Fatalf("unexpected latest news %v", latest)
	}
	if all := site.LatestNews(0); len(all) != len(site.News) {
		t.Fatalf("expected all news for non-positive limit")
	}
}

func TestParseRejectsInvalidContent(t *testing.T) {
	cases := map[string]string{
		"empty navigation":  "name: x\n",
		"relative path":     "navigation:\n  - label: {en: A}\n    path: products\n",
		"missing label":     "navigation:\n  - path: /products\n",
		"duplicate product": "navigation:\n  - label: {en: A}\n    path: /\nproducts:\n  - slug: a\n  - slug: a\n",
		"slash in slug":     "navigation:\n  - label: {en: A}\n    path: /\nnews:\n  - slug: a/b\n",
		"malformed yaml":    "navigation: [",
	}

	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	raw := "name: Test\nnavigation:\n  - label: {en: Home, ja: ホーム}\n    path: /\nstrings:\n  hello: {en: Hello}\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("failed to write content file: %v", err)
	}

	site, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if site.Name != "Test" {
		t.Fatalf("expected name Test, got %q", site.Name)
	}
	if got := site.Text("hello", lang.Japanese, lang.English); got != "Hello" {
		t.Fatalf("expected fallback to English, got %q", got)
	}
	if got := site.Text("unknown", lang.English, lang.English); got != "unknown" {
		t.Fatalf("expected key for unknown string, got %q", got)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
