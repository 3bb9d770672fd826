package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("deleted key should miss")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// ListingKey should separate endpoints, listings, and namespaces
	lk1 := k.ListingKey("https://wiki.example.org/api.php", "allpages", 0)
	lk2 := k.ListingKey("https://wiki.example.org/api.php", "allpages", 14)
	lk3 := k.ListingKey("https://other.example.org/api.php", "allpages", 0)
	if lk1 == lk2 {
		t.Error("Different namespaces should produce different keys")
	}
	if lk1 == lk3 {
		t.Error("Different endpoints should produce different keys")
	}

	// RenderKey should include options in hash
	rk1 := k.RenderKey("hash123", RenderKeyOpts{Root: "Category:English", Format: "svg"})
	rk2 := k.RenderKey("hash123", RenderKeyOpts{Root: "Category:English", Format: "dot"})
	if rk1 == rk2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}

	// Keys should be deterministic
	if k.RenderKey("hash123", RenderKeyOpts{Format: "svg"}) != k.RenderKey("hash123", RenderKeyOpts{Format: "svg"}) {
		t.Error("RenderKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "wiki:archlinux:")

	// All keys should be prefixed
	lk := scoped.ListingKey("https://wiki.example.org/api.php", "allpages", 0)
	if !strings.HasPrefix(lk, "wiki:archlinux:") {
		t.Errorf("ScopedKeyer ListingKey should be prefixed: %s", lk)
	}

	rk := scoped.RenderKey("hash123", RenderKeyOpts{})
	if !strings.HasPrefix(rk, "wiki:archlinux:") {
		t.Errorf("ScopedKeyer RenderKey should be prefixed: %s", rk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ListingKey("endpoint", "allpages", 0)
	if !strings.HasPrefix(key, "prefix:listing:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	inner := errors.New("connection refused")
	err := Retryable(inner)
	if !IsRetryable(err) {
		t.Error("IsRetryable should report the wrapped error")
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error should unwrap to the inner error")
	}
	if err.Error() != inner.Error() {
		t.Errorf("message changed: %s", err.Error())
	}

	if IsRetryable(inner) {
		t.Error("unwrapped errors are not retryable")
	}
}
