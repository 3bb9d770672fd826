package httputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	titles := []string{"Installation guide", "Installation guide (Česky)", "Main page"}
	if err := c.Set("allpages:ns0", titles); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got []string
	ok, err := c.Get("allpages:ns0", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}
	if len(got) != 3 || got[0] != "Installation guide" {
		t.Errorf("Get() returned %v, want %v", got, titles)
	}
}

func TestCacheStructuredValues(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	redirects := map[string]string{
		"Install":   "Installation guide",
		"Main Page": "Main page",
	}
	if err := c.Set("redirects:ns0", redirects); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got map[string]string
	ok, err := c.Get("redirects:ns0", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}
	if got["Install"] != "Installation guide" {
		t.Errorf("got redirect target %q, want %q", got["Install"], "Installation guide")
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	var got []string
	ok, err := c.Get("allpages:ns4", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for a key that was never set")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, err := NewCache(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	if err := c.Set("categories", []string{"Category:English"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got []string
	ok, err := c.Get("categories", &got)
	if err != nil || !ok {
		t.Fatalf("fresh Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err = c.Get("categories", &got)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("stale Get() error = %v, want ErrExpired", err)
	}
	if ok {
		t.Error("stale Get() returned true")
	}
}

func TestCacheKeyPathIsDeterministic(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	if c.keyPath("allpages:ns0") != c.keyPath("allpages:ns0") {
		t.Error("same key should map to the same path")
	}
	if c.keyPath("allpages:ns0") == c.keyPath("allpages:ns4") {
		t.Error("different keys should map to different paths")
	}
}

func TestNewCacheDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := filepath.Join(home, ".cache", "interwiki")
	if c.Dir() != want {
		t.Errorf("Dir() = %s, want %s", c.Dir(), want)
	}
	if c.TTL() != time.Hour {
		t.Errorf("TTL() = %v, want 1h", c.TTL())
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestCacheNamespaceIsolation(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	pages := c.Namespace("allpages:")
	redirects := c.Namespace("redirects:")

	if err := pages.Set("ns0", "pages-data"); err != nil {
		t.Fatalf("pages.Set() failed: %v", err)
	}
	if err := redirects.Set("ns0", "redirects-data"); err != nil {
		t.Fatalf("redirects.Set() failed: %v", err)
	}

	var got string
	if ok, err := pages.Get("ns0", &got); !ok || err != nil || got != "pages-data" {
		t.Errorf("pages.Get() = %v, %v, %q", ok, err, got)
	}
	if ok, err := redirects.Get("ns0", &got); !ok || err != nil || got != "redirects-data" {
		t.Errorf("redirects.Get() = %v, %v, %q", ok, err, got)
	}
}

func TestCacheNamespaceChaining(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	wiki := c.Namespace("wiki:")
	pages := wiki.Namespace("allpages:")

	if err := pages.Set("ns0", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got string
	if ok, err := pages.Get("ns0", &got); !ok || err != nil || got != "value" {
		t.Errorf("Get() = %v, %v, %q; want true, nil, %q", ok, err, got, "value")
	}

	// Without the full prefix chain the key is a different entry.
	if found, _ := wiki.Get("ns0", &got); found {
		t.Error("value accessible without full namespace chain")
	}
}

func TestCacheNamespaceEmptyPrefix(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	ns := c.Namespace("")
	if err := ns.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got string
	if ok, err := c.Get("key", &got); !ok || err != nil || got != "value" {
		t.Error("empty namespace should behave like the parent cache")
	}

	if ns.Dir() != c.Dir() || ns.TTL() != c.TTL() {
		t.Error("namespaced view should share the parent's dir and TTL")
	}
}
