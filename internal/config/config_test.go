package config

import (
	"os"
	"reflect"
	"testing"

	"ekoi-website/pkg/lang"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestLocaleDefaults(t *testing.T) {
	unsetEnv(t, "DEFAULT_LOCALE")
	unsetEnv(t, "SUPPORTED_LOCALES")
	unsetEnv(t, "LOCALE_DETECTION")

	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default configuration to be valid: %v", err)
	}

	def, supported, err := cfg.Locales()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def != lang.English {
		t.Fatalf("expected en default, got %q", def)
	}
	if !reflect.DeepEqual(supported, []lang.Locale{lang.English, lang.Japanese}) {
		t.Fatalf("unexpected supported locales %v", supported)
	}
	if cfg.LocaleDetection {
		t.Fatalf("expected locale detection to be disabled by default")
	}
}

func TestSupportedLocalesAcceptsJSONAndCSV(t *testing.T) {
	t.Setenv("SUPPORTED_LOCALES", `["ja","en"]`)
	if got := New().SupportedLocales; !reflect.DeepEqual(got, []string{"ja", "en"}) {
		t.Fatalf("unexpected JSON list %v", got)
	}

	t.Setenv("SUPPORTED_LOCALES", "en, ja")
	if got := New().SupportedLocales; !reflect.DeepEqual(got, []string{"en", "ja"}) {
		t.Fatalf("unexpected CSV list %v", got)
	}
}

func TestValidateRejectsDefaultOutsideSupportedSet(t *testing.T) {
	t.Setenv("DEFAULT_LOCALE", "fr")
	t.Setenv("SUPPORTED_LOCALES", "en,ja")

	if err := New().Validate(); err == nil {
		t.Fatalf("expected validation error for unsupported default locale")
	}
}

func TestValidateRejectsNegativeCacheTTL(t *testing.T) {
	unsetEnv(t, "DEFAULT_LOCALE")
	unsetEnv(t, "SUPPORTED_LOCALES")
	t.Setenv("PAGE_CACHE_TTL", "-1")

	if err := New().Validate(); err == nil {
		t.Fatalf("expected validation error for negative cache TTL")
	}
}

func TestBooleanFlags(t *testing.T) {
	t.Setenv("LOCALE_DETECTION", "1")
	t.Setenv("ENABLE_DATABASE", "false")

	cfg := New()
	if !cfg.LocaleDetection {
		t.Fatalf("expected LOCALE_DETECTION=1 to enable detection")
	}
	if cfg.EnableDatabase {
		t.Fatalf("expected ENABLE_DATABASE=false to disable the database")
	}
}
