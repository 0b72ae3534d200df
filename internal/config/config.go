package config

import (
	"fmt"
	"os"
	"strings"

	"ekoi-website/pkg/lang"
)

type Config struct {
	// Database
	EnableDatabase bool
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DatabaseURL    string

	// Redis
	EnableRedis bool
	RedisURL    string

	// Server
	Port        string
	Environment string
	StaticDir   string

	// CORS
	CORSOrigins []string

	// Email
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	ContactRecipient string

	// Rate Limiting
	RateLimitRequests        int
	RateLimitWindow          int
	RateLimitBurst           int
	ContactRateLimitRequests int
	ContactRateLimitWindow   int

	// Features
	EnableCache     bool
	EnableEmail     bool
	EnableMetrics   bool
	LocaleDetection bool
	PageCacheTTL    int

	// Localization
	DefaultLocale    string
	SupportedLocales []string

	// Content
	ContentFile string

	// Logging
	LogLevel string
	LogFile  string

	// Site Meta
	SiteName string
	SiteURL  string
}

func New() *Config {
	c := &Config{
		// Database
		EnableDatabase: getEnvAsBool("ENABLE_DATABASE", true),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "ekoi"),
		DBPassword:     getEnv("DB_PASSWORD", "ekoipassword"),
		DBName:         getEnv("DB_NAME", "ekoi"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		StaticDir:   getEnv("STATIC_DIR", "./static"),

		// CORS
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),

		// Email
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", "noreply@ekoi.example"),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", ""),

		// Rate Limiting
		RateLimitRequests:        getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:          getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:           getEnvAsInt("RATE_LIMIT_BURST", 0),
		ContactRateLimitRequests: getEnvAsInt("CONTACT_RATE_LIMIT_REQUESTS", 5),
		ContactRateLimitWindow:   getEnvAsInt("CONTACT_RATE_LIMIT_WINDOW", 600),

		// Features
		EnableCache:     getEnvAsBool("ENABLE_CACHE", true),
		EnableEmail:     getEnvAsBool("ENABLE_EMAIL", false),
		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		LocaleDetection: getEnvAsBool("LOCALE_DETECTION", false),
		PageCacheTTL:    getEnvAsInt("PAGE_CACHE_TTL", 300),

		// Localization
		DefaultLocale:    getEnv("DEFAULT_LOCALE", string(lang.Default)),
		SupportedLocales: getEnvAsList("SUPPORTED_LOCALES", []string{string(lang.English), string(lang.Japanese)}),

		// Content
		ContentFile: getEnv("CONTENT_FILE", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "EKOI"),
		SiteURL:  getEnv("SITE_URL", "http://localhost:8080"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

// Locales returns the normalized default locale and supported set, default
// first.
func (c *Config) Locales() (lang.Locale, []lang.Locale, error) {
	return lang.EnsureDefault(c.DefaultLocale, c.SupportedLocales)
}

// Validate reports configuration that would prevent the site from serving.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, _, err := c.Locales(); err != nil {
		return fmt.Errorf("invalid locale configuration: %w", err)
	}
	if c.PageCacheTTL < 0 {
		return fmt.Errorf("PAGE_CACHE_TTL must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func getEnvAsList(key string, defaultValue []string) []string {
	values, err := lang.DecodeList(getEnv(key, ""))
	if err != nil || len(values) == 0 {
		return defaultValue
	}
	return values
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
