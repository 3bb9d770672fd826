// Package httputil provides HTTP utilities for the wiki API client.
//
// # Overview
//
// This package provides infrastructure used by all wiki queries:
//
//   - [Cache]: File-based API response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores API responses in the filesystem (~/.cache/interwiki/)
// with configurable TTL. Full-site listings (all pages, all categories,
// all redirects) are expensive to fetch, so repeated runs against the
// same wiki reuse the cached generation until it expires.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24 * time.Hour)
//	ok, err := cache.Get("allpages:ns0", &pages)  // Check cache
//	if !ok {
//	    pages = fetchFromAPI()
//	    cache.Set("allpages:ns0", pages)          // Store for later
//	}
//
// Cache keys should be namespaced by query type to avoid collisions.
//
// # Retry
//
// [Retry] wraps API requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - Rate limit responses
//
// Only errors wrapped in [RetryableError] are retried; everything else
// fails fast:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/interwiki/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `interwiki cache clear` or by deleting
// the cache directory.
package httputil
