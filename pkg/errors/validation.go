package errors

import (
	"strings"
	"unicode"
)

// ValidateTitle validates a page title for safety and correctness.
// It rejects titles that MediaWiki itself would refuse, so that invalid
// input is caught before an API round trip.
//
// The validation rules are intentionally conservative:
//   - No empty titles
//   - No control characters
//   - No path-like relative segments ("./", "../")
//   - Maximum length of 255 bytes (the MediaWiki limit)
//   - No fragment or pipe characters
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidTitle, "page title cannot be empty")
	}

	if len(title) > 255 {
		return New(ErrCodeInvalidTitle, "page title too long (max 255 bytes)")
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTitle, "page title contains control characters")
		}
	}

	for _, pattern := range []string{"./", "../", "|", "#", "<", ">", "[", "]", "{", "}", "_ ", " _"} {
		if strings.Contains(title, pattern) {
			return New(ErrCodeInvalidTitle, "page title contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
