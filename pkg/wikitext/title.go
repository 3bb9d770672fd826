package wikitext

import (
	"strings"
	"unicode"
)

// Canonicalize normalizes a page or template title the way MediaWiki
// does before comparing: underscores become spaces, whitespace runs
// collapse to a single space, surrounding whitespace is stripped, and
// the first letter is uppercased.
func Canonicalize(title string) string {
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return title
	}
	runes := []rune(title)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TitlesEqual reports whether two titles refer to the same page under
// MediaWiki normalization. The comparison is case-insensitive, matching
// how the wiki resolves "[[Category:Foo]]" and "[[category:foo]]" to
// the same page.
func TitlesEqual(a, b string) bool {
	return strings.EqualFold(Canonicalize(a), Canonicalize(b))
}
