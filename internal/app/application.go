package app

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ekoi-website/internal/config"
	"ekoi-website/internal/content"
	"ekoi-website/internal/handlers"
	"ekoi-website/internal/middleware"
	"ekoi-website/internal/models"
	"ekoi-website/internal/repository"
	"ekoi-website/internal/service"
	"ekoi-website/pkg/cache"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/logger"
	"ekoi-website/pkg/utils"
	"ekoi-website/web"
)

type Options struct {
	// Templates and Static override the embedded assets when set.
	Templates fs.FS
	Static    fs.FS
}

type Application struct {
	cfg     *config.Config
	options Options

	db          *gorm.DB
	cache       *cache.Cache
	site        *content.Site
	resolver    *lang.Resolver
	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	Inquiry repository.InquiryRepository
}

type serviceContainer struct {
	Email   *service.EmailService
	Contact *service.ContactService
}

type handlerContainer struct {
	Navigation *handlers.NavigationHandler
	SEO        *handlers.SEOHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opts.Templates == nil {
		opts.Templates = web.Templates()
	}
	if opts.Static == nil {
		opts.Static = staticAssets(cfg.StaticDir)
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	defaultLocale, supported, err := cfg.Locales()
	if err != nil {
		return nil, fmt.Errorf("invalid locale configuration: %w", err)
	}
	app.resolver = lang.NewResolver(defaultLocale, supported)

	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	app.site = site
	app.reportMissingTranslations()

	if cfg.EnableDatabase {
		if err := app.initDatabase(); err != nil {
			return nil, err
		}
		if err := app.runMigrations(); err != nil {
			return nil, err
		}
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.rateLimiter = middleware.NewRateLimitManager(context.Background())

	if err := app.initRouter(); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

// staticAssets serves assets from dir when it exists on disk and from the
// embedded copy otherwise.
func staticAssets(dir string) fs.FS {
	if dir = strings.TrimSpace(dir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return web.Static()
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"locales":     a.resolver.Supported(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// reportMissingTranslations logs navigation labels that fall back to another
// locale, so gaps in the content file are visible at start-up.
func (a *Application) reportMissingTranslations() {
	supported := a.resolver.Supported()
	for _, entry := range a.site.Navigation {
		if missing := entry.Label.Missing(supported); len(missing) > 0 {
			logger.Warn("Navigation label is missing translations", map[string]interface{}{
				"path":    entry.Path,
				"missing": missing,
			})
		}
	}
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(&models.Inquiry{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at DESC)",
	}
	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Info("Database migration completed", nil)
	return nil
}

// initCache connects the rendered page cache. The site keeps serving without
// it when Redis is unreachable.
func (a *Application) initCache() {
	enabled := a.cfg.EnableRedis && a.cfg.EnableCache

	pageCache, err := cache.NewCache(a.cfg.RedisURL, enabled)
	if err != nil {
		logger.Error(err, "Page cache unavailable, rendering every request", map[string]interface{}{
			"redis_url": a.cfg.RedisURL,
		})
		pageCache, _ = cache.NewCache("", false)
	}

	if pageCache.Enabled() {
		// Cached pages may have been rendered from different content.
		if err := pageCache.InvalidateRenderedPages(); err != nil {
			logger.Error(err, "Failed to invalidate cached pages", nil)
		}
	}

	a.cache = pageCache
}

func (a *Application) initRepositories() {
	if a.db == nil {
		return
	}
	a.repositories = repositoryContainer{
		Inquiry: repository.NewInquiryRepository(a.db),
	}
}

func (a *Application) initServices() {
	email := service.NewEmailService(a.cfg)

	var mailer service.Mailer
	if a.cfg.EnableEmail {
		mailer = email
	}

	a.services = serviceContainer{
		Email:   email,
		Contact: service.NewContactService(a.repositories.Inquiry, mailer, a.cfg.ContactRecipient),
	}
}

func (a *Application) initHandlers() error {
	templates, err := utils.LoadTemplates(a.options.Templates, utils.FSAssetVersion(a.options.Static, "/static"))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", map[string]interface{}{
		"templates": templateNames(templates),
	})

	templateHandler, err := handlers.NewTemplateHandler(
		a.cfg,
		a.site,
		a.resolver,
		templates,
		a.cache,
		a.services.Contact,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	a.handlers = handlerContainer{
		Navigation: handlers.NewNavigationHandler(a.site, a.resolver, templateHandler.Navigation()),
		SEO:        handlers.NewSEOHandler(a.site, a.resolver, a.cfg),
	}
	return nil
}

func templateNames(tmpl *template.Template) []string {
	names := make([]string, 0, len(tmpl.Templates()))
	for _, t := range tmpl.Templates() {
		names = append(names, t.Name())
	}
	return names
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(a.templateHandler.RenderServerError))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))
	router.Use(middleware.LocaleRoutingMiddleware(a.cfg, a.resolver))

	router.GET("/health", a.health)
	if a.cfg.EnableMetrics {
		router.GET("/metrics", middleware.NoIndexMiddleware(), gin.WrapH(promhttp.Handler()))
	}

	router.StaticFS("/static", http.FS(a.options.Static))
	router.GET("/favicon.ico", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/static/favicon.svg")
	})
	router.GET("/robots.txt", a.handlers.SEO.Robots)
	router.GET("/sitemap.xml", a.handlers.SEO.Sitemap)

	api := router.Group("/api/v1")
	api.Use(middleware.NoIndexMiddleware())
	api.Use(cors.New(cors.Config{
		AllowOrigins:  a.cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept-Language"},
		ExposeHeaders: []string{"Content-Length", "Content-Language"},
		MaxAge:        12 * time.Hour,
	}))
	{
		api.GET("/navigation", a.handlers.Navigation.GetNavigation)
		api.GET("/locale/resolve", a.handlers.Navigation.ResolveLocale)
	}

	pages := a.templateHandler
	localized := router.Group("/:locale")
	{
		localized.GET("", pages.RenderHome)
		localized.GET("/products", pages.RenderProducts)
		localized.GET("/products/:slug", pages.RenderProduct)
		localized.GET("/solutions", pages.RenderSolutions)
		localized.GET("/why-us", pages.RenderWhyUs)
		localized.GET("/news", pages.RenderNews)
		localized.GET("/news/:slug", pages.RenderArticle)
		localized.GET("/contact", pages.RenderContact)
		localized.POST("/contact", middleware.ContactRateLimitMiddleware(a.cfg, a.rateLimiter), pages.SubmitContact)
		localized.GET("/privacy", pages.RenderPrivacy)
		localized.GET("/terms", pages.RenderTerms)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		pages.RenderNotFound(c)
	})

	a.router = router
	return nil
}

func (a *Application) health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{
		"cache": a.cache.Enabled(),
	}

	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		database := "up"
		if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			database = "down"
			status = http.StatusServiceUnavailable
		}
		checks["database"] = database
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}
