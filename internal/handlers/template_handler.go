package handlers

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"ekoi-website/internal/config"
	"ekoi-website/internal/content"
	"ekoi-website/internal/models"
	"ekoi-website/pkg/cache"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/navigation"
)

// ContactSubmitter accepts contact form submissions.
type ContactSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest, meta models.InquiryMeta) (*models.Inquiry, error)
}

type TemplateHandler struct {
	config     *config.Config
	site       *content.Site
	resolver   *lang.Resolver
	navigation *navigation.Model
	templates  *template.Template
	cache      *cache.Cache
	contact    ContactSubmitter
	pageTTL    time.Duration
	now        func() time.Time
}

// NewTemplateHandler wires the page renderer. pageCache and contact may be nil:
// pages are then rendered on every request and the contact form reports that
// submissions are unavailable.
func NewTemplateHandler(cfg *config.Config, site *content.Site, resolver *lang.Resolver, templates *template.Template, pageCache *cache.Cache, contact ContactSubmitter) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if site == nil {
		return nil, fmt.Errorf("site content is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("locale resolver is required")
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	handler := &TemplateHandler{
		config:     cfg,
		site:       site,
		resolver:   resolver,
		navigation: navigation.NewModel(resolver.Default(), site.Navigation),
		templates:  templates,
		cache:      pageCache,
		contact:    contact,
		pageTTL:    time.Duration(cfg.PageCacheTTL) * time.Second,
		now:        time.Now,
	}

	return handler, nil
}

// Navigation exposes the model shared by every rendering surface.
func (h *TemplateHandler) Navigation() *navigation.Model {
	return h.navigation
}

// Translator looks up UI strings for one locale.
type Translator struct {
	site     *content.Site
	locale   lang.Locale
	fallback lang.Locale
}

func (t Translator) Get(key string) string {
	if t.site == nil {
		return key
	}
	return t.site.Text(key, t.locale, t.fallback)
}

func (h *TemplateHandler) translator(locale lang.Locale) Translator {
	return Translator{site: h.site, locale: locale, fallback: h.resolver.Default()}
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Locale lang.Locale
	Label  string
	Href   string
	Active bool
}

// Alternate is an hreflang link to the same page in another locale.
type Alternate struct {
	Locale lang.Locale
	Href   string
}

// MobileNavState is the server-rendered mobile navigation panel. Links is the
// same slice the header navigation renders.
type MobileNavState struct {
	Open        bool
	ToggleHref  string
	DismissHref string
	Links       []navigation.Link
}

type ProductCard struct {
	Name    string
	Summary string
	Path    string
	Action  string
}

type ArticleCard struct {
	Title   string
	Summary string
	Path    string
	Date    time.Time
	Locale  lang.Locale
	Action  string
}

type FeatureView struct {
	Title string
	Body  string
}

type SpecView struct {
	Label string
	Value string
}

type ProductView struct {
	Name        string
	Summary     string
	Description string
	Specs       []SpecView
}

type ArticleView struct {
	Title   string
	Summary string
	Body    string
	Date    time.Time
}
