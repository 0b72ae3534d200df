package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/navigation"
)

//go:embed site.yaml
var defaultSite []byte

// Feature is a titled block of copy used by the solutions and why-us pages.
type Feature struct {
	Title lang.TranslatedString `yaml:"title"`
	Body  lang.TranslatedString `yaml:"body"`
}

type Hero struct {
	Title    lang.TranslatedString `yaml:"title"`
	Subtitle lang.TranslatedString `yaml:"subtitle"`
	Primary  navigation.Entry      `yaml:"primary"`
	Contact  navigation.Entry      `yaml:"contact"`
}

type Spec struct {
	Label lang.TranslatedString `yaml:"label"`
	Value string                `yaml:"value"`
}

type Product struct {
	Slug        string                `yaml:"slug"`
	Name        lang.TranslatedString `yaml:"name"`
	Summary     lang.TranslatedString `yaml:"summary"`
	Description lang.TranslatedString `yaml:"description"`
	Specs       []Spec                `yaml:"specs"`
	Featured    bool                  `yaml:"featured"`
}

type Article struct {
	Slug    string                `yaml:"slug"`
	Title   lang.TranslatedString `yaml:"title"`
	Summary lang.TranslatedString `yaml:"summary"`
	Body    lang.TranslatedString `yaml:"body"`
	Date    time.Time             `yaml:"date"`
}

type Partner struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Page is a plain text page such as the privacy policy.
type Page struct {
	Title lang.TranslatedString `yaml:"title"`
	Body  lang.TranslatedString `yaml:"body"`
}

// Site is everything the presentation layer renders. It is loaded once at
// start-up and treated as read-only afterwards.
type Site struct {
	Name        string                           `yaml:"name"`
	Title       lang.TranslatedString            `yaml:"title"`
	Description lang.TranslatedString            `yaml:"description"`
	Tagline     lang.TranslatedString            `yaml:"tagline"`
	Navigation  []navigation.Entry               `yaml:"navigation"`
	Footer      []navigation.Section             `yaml:"footer"`
	Legal       []navigation.Entry               `yaml:"legal"`
	Hero        Hero                             `yaml:"hero"`
	Products    []Product                        `yaml:"products"`
	Solutions   []Feature                        `yaml:"solutions"`
	Reasons     []Feature                        `yaml:"reasons"`
	News        []Article                        `yaml:"news"`
	Partners    []Partner                        `yaml:"partners"`
	Pages       map[string]Page                  `yaml:"pages"`
	Strings     map[string]lang.TranslatedString `yaml:"strings"`
}

// Load reads the site definition from path, or the embedded default when path
// is empty.
func Load(path string) (*Site, error) {
	data := defaultSite
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes and validates a site definition.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	sort.SliceStable(site.News, func(i, j int) bool {
		return site.News[i].Date.After(site.News[j].Date)
	})

	return &site, nil
}

// Validate checks the structural requirements the handlers rely on.
func (s *Site) Validate() error {
	if len(s.Navigation) == 0 {
		return fmt.Errorf("content: navigation must not be empty")
	}
	for i, entry := range s.Navigation {
		if !strings.HasPrefix(entry.Path, "/") {
			return fmt.Errorf("content: navigation entry %d has non site-relative path %q", i, entry.Path)
		}
		if len(entry.Label) == 0 {
			return fmt.Errorf("content: navigation entry %q has no label", entry.Path)
		}
	}

	seen := make(map[string]struct{}, len(s.Products))
	for _, product := range s.Products {
		if err := checkSlug("product", product.Slug, seen); err != nil {
			return err
		}
	}

	seen = make(map[string]struct{}, len(s.News))
	for _, article := range s.News {
		if err := checkSlug("article", article.Slug, seen); err != nil {
			return err
		}
	}

	return nil
}

func checkSlug(kind, slug string, seen map[string]struct{}) error {
	if strings.TrimSpace(slug) == "" || strings.Contains(slug, "/") {
		return fmt.Errorf("content: invalid %s slug %q", kind, slug)
	}
	if _, exists := seen[slug]; exists {
		return fmt.Errorf("content: duplicate %s slug %q", kind, slug)
	}
	seen[slug] = struct{}{}
	return nil
}

// Product looks up a product by slug.
func (s *Site) Product(slug string) (Product, bool) {
	for _, product := range s.Products {
		if product.Slug == slug {
			return product, true
		}
	}
	return Product{}, false
}

// FeaturedProducts returns the products flagged for the home page.
func (s *Site) FeaturedProducts() []Product {
	var featured []Product
	for _, product := range s.Products {
		if product.Featured {
			featured = append(featured, product)
		}
	}
	return featured
}

// Article looks up a news article by slug.
func (s *Site) Article(slug string) (Article, bool) {
	for _, article := range s.News {
		if article.Slug == slug {
			return article, true
		}
	}
	return Article{}, false
}

// LatestNews returns up to limit articles, newest first.
func (s *Site) LatestNews(limit int) []Article {
	if limit <= 0 || limit >= len(s.News) {
		return append([]Article(nil), s.News...)
	}
	return append([]Article(nil), s.News[:limit]...)
}

// Text returns the UI string for key in locale. Unknown keys render as the key
// itself so a missing entry is visible rather than blank.
func (s *Site) Text(key string, locale, fallback lang.Locale) string {
	if value, ok := s.Strings[key]; ok {
		if text := value.In(locale, fallback); text != "" {
			return text
		}
	}
	return key
}
