package handlers

import (
	"net/http"

	"ekoi-website/internal/content"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/navigation"

	"github.com/gin-gonic/gin"
)

const homeNewsLimit = 3

// navLabel returns the navigation label configured for path, or the UI string
// key when the path is not part of the navigation.
func (h *TemplateHandler) navLabel(path, fallbackKey string, locale lang.Locale) string {
	for _, entry := range h.site.Navigation {
		if entry.Path == path {
			return entry.Label.In(locale, h.resolver.Default())
		}
	}
	return h.translator(locale).Get(fallbackKey)
}

// breadcrumbs builds the trail of a page below home. Items are given with
// site-relative paths and localized here.
func (h *TemplateHandler) breadcrumbs(locale lang.Locale, items ...navigation.Item) navigation.Trail {
	home := navigation.Item{
		Label: h.translator(locale).Get("home"),
		Path:  lang.Localize(locale, "/"),
	}
	localized := make([]navigation.Item, 0, len(items))
	for _, item := range items {
		if item.Path != "" {
			item.Path = navigation.LocalizePath(locale, item.Path)
		}
		localized = append(localized, item)
	}
	return navigation.BreadcrumbsFor(home, localized)
}

func (h *TemplateHandler) productCards(locale lang.Locale, products []content.Product) []ProductCard {
	fallback := h.resolver.Default()
	action := h.translator(locale).Get("view_details")
	cards := make([]ProductCard, 0, len(products))
	for _, product := range products {
		cards = append(cards, ProductCard{
			Name:    product.Name.In(locale, fallback),
			Summary: product.Summary.In(locale, fallback),
			Path:    lang.Localize(locale, "/products/"+product.Slug),
			Action:  action,
		})
	}
	return cards
}

func (h *TemplateHandler) articleCards(locale lang.Locale, articles []content.Article) []ArticleCard {
	fallback := h.resolver.Default()
	action := h.translator(locale).Get("read_more")
	cards := make([]ArticleCard, 0, len(articles))
	for _, article := range articles {
		cards = append(cards, ArticleCard{
			Title:   article.Title.In(locale, fallback),
			Summary: article.Summary.In(locale, fallback),
			Path:    lang.Localize(locale, "/news/"+article.Slug),
			Date:    article.Date,
			Locale:  locale,
			Action:  action,
		})
	}
	return cards
}

func (h *TemplateHandler) featureViews(locale lang.Locale, features []content.Feature) []FeatureView {
	fallback := h.resolver.Default()
	views := make([]FeatureView, 0, len(features))
	for _, feature := range features {
		views = append(views, FeatureView{
			Title: feature.Title.In(locale, fallback),
			Body:  feature.Body.In(locale, fallback),
		})
	}
	return views
}

func (h *TemplateHandler) RenderHome(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	fallback := h.resolver.Default()
	hero := h.site.Hero

	h.renderTemplate(c, "home", "", "", gin.H{
		"Hero": gin.H{
			"Title":    hero.Title.In(locale, fallback),
			"Subtitle": hero.Subtitle.In(locale, fallback),
			"Primary":  navigation.LocalizeEntry(hero.Primary, locale, fallback),
			"Contact":  navigation.LocalizeEntry(hero.Contact, locale, fallback),
		},
		"Products": h.productCards(locale, h.site.FeaturedProducts()),
		"Articles": h.articleCards(locale, h.site.LatestNews(homeNewsLimit)),
		"Partners": h.site.Partners,
	})
}

func (h *TemplateHandler) RenderProducts(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	heading := h.navLabel("/products", "featured_products", locale)

	h.renderTemplate(c, "products", heading, "", gin.H{
		"Heading":     heading,
		"Intro":       h.translator(locale).Get("products_intro"),
		"Products":    h.productCards(locale, h.site.Products),
		"Breadcrumbs": h.breadcrumbs(locale, navigation.Item{Label: heading, Path: "/products"}),
	})
}

func (h *TemplateHandler) RenderProduct(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	product, ok := h.site.Product(c.Param("slug"))
	if !ok {
		h.RenderNotFound(c)
		return
	}

	fallback := h.resolver.Default()
	view := ProductView{
		Name:        product.Name.In(locale, fallback),
		Summary:     product.Summary.In(locale, fallback),
		Description: product.Description.In(locale, fallback),
		Specs:       make([]SpecView, 0, len(product.Specs)),
	}
	for _, spec := range product.Specs {
		view.Specs = append(view.Specs, SpecView{Label: spec.Label.In(locale, fallback), Value: spec.Value})
	}

	section := h.navLabel("/products", "featured_products", locale)
	h.renderTemplate(c, "product", view.Name, view.Summary, gin.H{
		"Product":      view,
		"ContactPath":  lang.Localize(locale, "/contact"),
		"ContactLabel": h.navLabel("/contact", "form_submit", locale),
		"Breadcrumbs": h.breadcrumbs(locale,
			navigation.Item{Label: section, Path: "/products"},
			navigation.Item{Label: view.Name},
		),
	})
}

func (h *TemplateHandler) RenderSolutions(c *gin.Context) {
	h.renderFeaturePage(c, "/solutions", "solutions_intro", h.site.Solutions)
}

func (h *TemplateHandler) RenderWhyUs(c *gin.Context) {
	h.renderFeaturePage(c, "/why-us", "why_us_intro", h.site.Reasons)
}

func (h *TemplateHandler) renderFeaturePage(c *gin.Context, path, introKey string, features []content.Feature) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	heading := h.navLabel(path, introKey, locale)
	intro := h.translator(locale).Get(introKey)

	h.renderTemplate(c, "features", heading, intro, gin.H{
		"Heading":     heading,
		"Intro":       intro,
		"Features":    h.featureViews(locale, features),
		"Breadcrumbs": h.breadcrumbs(locale, navigation.Item{Label: heading, Path: path}),
	})
}

func (h *TemplateHandler) RenderNews(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	heading := h.navLabel("/news", "latest_news", locale)

	h.renderTemplate(c, "news", heading, "", gin.H{
		"Heading":     heading,
		"Intro":       h.translator(locale).Get("news_intro"),
		"Articles":    h.articleCards(locale, h.site.News),
		"Breadcrumbs": h.breadcrumbs(locale, navigation.Item{Label: heading, Path: "/news"}),
	})
}

func (h *TemplateHandler) RenderArticle(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	locale := h.requestLocale(c)
	article, ok := h.site.Article(c.Param("slug"))
	if !ok {
		h.RenderNotFound(c)
		return
	}

	fallback := h.resolver.Default()
	view := ArticleView{
		Title:   article.Title.In(locale, fallback),
		Summary: article.Summary.In(locale, fallback),
		Body:    article.Body.In(locale, fallback),
		Date:    article.Date,
	}

	section := h.navLabel("/news", "latest_news", locale)
	h.renderTemplate(c, "article", view.Title, view.Summary, gin.H{
		"Article":  view,
		"NewsPath": lang.Localize(locale, "/news"),
		"Breadcrumbs": h.breadcrumbs(locale,
			navigation.Item{Label: section, Path: "/news"},
			navigation.Item{Label: view.Title},
		),
	})
}

func (h *TemplateHandler) RenderPrivacy(c *gin.Context) {
	h.renderStaticPage(c, "privacy")
}

func (h *TemplateHandler) RenderTerms(c *gin.Context) {
	h.renderStaticPage(c, "terms")
}

func (h *TemplateHandler) renderStaticPage(c *gin.Context, key string) {
	if h.serveCached(c) {
		return
	}

	page, ok := h.site.Pages[key]
	if !ok {
		h.RenderNotFound(c)
		return
	}

	locale := h.requestLocale(c)
	fallback := h.resolver.Default()
	heading := page.Title.In(locale, fallback)

	h.renderTemplate(c, "page", heading, "", gin.H{
		"Heading":     heading,
		"Body":        page.Body.In(locale, fallback),
		"Breadcrumbs": h.breadcrumbs(locale, navigation.Item{Label: heading, Path: "/" + key}),
	})
}

// RenderNotFound renders the localized 404 page. Requests outside locale
// routing fall back to the default locale.
func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "not_found_title", "not_found_body")
}

// RenderServerError is used by the recovery middleware.
func (h *TemplateHandler) RenderServerError(c *gin.Context, _ any) {
	h.renderError(c, http.StatusInternalServerError, "server_error_title", "server_error_body")
	c.Abort()
}
