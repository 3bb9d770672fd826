package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists on disk
// but has outlived its TTL. The caller should refetch from the wiki and
// [Cache.Set] the fresh result:
//
//	ok, err := cache.Get("allpages:ns0", &pages)
//	if errors.Is(err, httputil.ErrExpired) {
//	    // refetch and Set
//	}
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON-marshalable values as files on disk. Full-site
// listings (all pages, all redirects, all categories) are expensive to
// fetch, so repeated runs against the same wiki reuse the cached
// generation until it expires.
//
// Filenames are the SHA-256 of the key, which keeps arbitrary keys
// filesystem-safe. Expiry is judged from the file's modification time;
// a TTL of zero disables it.
//
// A single Cache value is not goroutine-safe, but separate instances
// (or processes) may share a directory. [Cache.Namespace] derives
// key-prefixed views so query types cannot collide:
//
//	pages := cache.Namespace("allpages:")
//	cats := cache.Namespace("categories:")
//	pages.Set("ns0", data)  // stored under "allpages:ns0"
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache opens (creating if needed) a cache directory with the given
// TTL. An empty dir selects ~/.cache/interwiki/. Directory creation is
// the only failure mode.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "interwiki")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the absolute path of the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry lifetime. Zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get looks up key and unmarshals the stored value into v, which must
// be a pointer. It distinguishes three outcomes:
//
//   - (true, nil): hit, v holds the cached value
//   - (false, nil): miss, v untouched
//   - (false, ErrExpired): entry present but stale, v untouched
//
// Any other error is an I/O or unmarshal failure. Get never touches
// modification times, so reads do not extend an entry's life.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	case c.ttl > 0 && time.Since(info.ModTime()) > c.ttl:
		return false, ErrExpired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set marshals v to JSON and stores it under key, replacing any
// previous entry. The write resets the modification time, so the TTL
// starts over.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), data, 0o644)
}

// Namespace returns a view of the cache whose keys are transparently
// prefixed. Views share the parent's directory and TTL, and calls
// chain:
//
//	cache.Namespace("wiki:").Namespace("allpages:")  // prefix "wiki:allpages:"
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

func (c *Cache) keyPath(key string) string {
	sum := sha256.Sum256([]byte(c.prefix + key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}
