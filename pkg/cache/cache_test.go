package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewCache("", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Enabled() {
		t.Fatalf("expected cache to be disabled")
	}

	if err := c.CacheRenderedPage("/en", []byte("<html></html>"), time.Minute); err != nil {
		t.Fatalf("expected no error when caching on a disabled cache, got %v", err)
	}
	if _, err := c.GetCachedRenderedPage("/en"); !errors.Is(err, ErrCacheDisabled) {
		t.Fatalf("expected ErrCacheDisabled, got %v", err)
	}
	if err := c.InvalidateRenderedPages(); err != nil {
		t.Fatalf("expected no error when invalidating a disabled cache, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected no error closing a disabled cache, got %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatalf("nil cache must report disabled")
	}
	if NewWithClient(nil).Enabled() {
		t.Fatalf("cache without client must report disabled")
	}
}

func TestRenderedPageKeyIncludesLocalePath(t *testing.T) {
	if RenderedPageKey("/ja/products") == RenderedPageKey("/en/products") {
		t.Fatalf("keys for different locales must differ")
	}
	if got := RenderedPageKey("/en"); got != "page:rendered:/en" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRenderedPageRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { _ = c.Close() })

	if _, err := c.GetCachedRenderedPage("/en"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	page := []byte("<html lang=\"ja\">ホーム</html>")
	if err := c.CacheRenderedPage("/ja", page, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Set("other:key", "kept", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetCachedRenderedPage("/ja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(page) {
		t.Fatalf("expected %q, got %q", page, got)
	}
	if ttl := server.TTL(RenderedPageKey("/ja")); ttl != time.Minute {
		t.Fatalf("expected one minute TTL, got %s", ttl)
	}

	if err := c.InvalidateRenderedPages(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server.Exists(RenderedPageKey("/ja")) {
		t.Fatalf("expected rendered page to be invalidated")
	}
	if !server.Exists("other:key") {
		t.Fatalf("invalidation must only touch rendered pages")
	}
}
