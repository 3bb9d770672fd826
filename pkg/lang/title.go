package lang

import (
	"regexp"
	"strings"

	"github.com/jkral/interwiki/pkg/errors"
)

// suffixPattern matches a title of the form "Base (Language)" where the
// separator before the parenthesis is a space or an underscore. The base
// part is matched lazily so that nested parentheses stay in the base.
var suffixPattern = regexp.MustCompile(`^(.*?)[ _]\(([^()]+)\)$`)

// categoryPattern matches the "Category:Language" pseudo-title form,
// where the category is named after the language itself.
var categoryPattern = regexp.MustCompile(`^[Cc]ategory[ _]?:[ _]?([^()]+)$`)

// DetectLanguage splits a full page title into its base title and
// language. The language-name matching is case-sensitive and spaces are
// treated the same way as underscores.
//
// Three title shapes are recognized:
//   - "Base (Language)" including "Base/Subpage (Language)"
//   - "Base (Language)/Subpage"
//   - "Category:Language" (the master category of a language)
//
// When a language is detected, the "(Language)" suffix is also stripped
// from every "/"-separated subpage component that carries the same
// language, so "Foo (Čeština)/Bar (Čeština)" detects as base "Foo/Bar".
// Titles without a recognized suffix belong to the default language.
func DetectLanguage(title string) (string, Language) {
	return detectLanguage(title, true)
}

// DetectLanguageShallow is DetectLanguage without the stripping of
// language suffixes from individual subpage components. The suffix at
// the end of the title (or before the first "/") is still detected.
func DetectLanguageShallow(title string) (string, Language) {
	return detectLanguage(title, false)
}

func detectLanguage(title string, stripSubpageParts bool) (string, Language) {
	var base, name, baseSuffix string

	// matches "Page name/Subpage (Language)"
	if m := suffixPattern.FindStringSubmatch(title); m != nil {
		base, name = m[1], m[2]
	} else if i := strings.Index(title, "/"); i >= 0 {
		// matches "Page name (Language)/Subpage"
		if m := suffixPattern.FindStringSubmatch(title[:i]); m != nil {
			base, name = m[1], m[2]
			baseSuffix = title[i:]
		}
	}
	// matches "Category:Language"
	if name == "" {
		if m := categoryPattern.FindStringSubmatch(title); m != nil {
			base, name = m[0], m[1]
		}
	}

	l, ok := ByName(name)
	if !ok {
		return title, Default()
	}

	if stripSubpageParts && strings.Contains(base, "/") {
		parts := strings.Split(base, "/")
		for i, p := range parts {
			if m := suffixPattern.FindStringSubmatch(p); m != nil && m[2] == name {
				parts[i] = m[1]
			}
		}
		base = strings.Join(parts, "/")
	}
	return base + baseSuffix, l
}

// FormatTitle builds the full localized title for the given base title
// and language name. It is the inverse operation of DetectLanguage.
//
// The base title is returned unchanged for the default language and for
// a master category page named after the language itself. For languages
// with an internal interlanguage tag, the "(Language)" suffix is added
// to every "/"-separated subpage component; other languages get only the
// trailing suffix.
//
// Returns an INVALID_LANGUAGE error if langName is not in the language
// table.
func FormatTitle(base, langName string) (string, error) {
	return formatTitle(base, langName, true)
}

// FormatTitleShallow is FormatTitle without the augmentation of
// individual subpage components; the suffix is appended only at the end.
func FormatTitleShallow(base, langName string) (string, error) {
	return formatTitle(base, langName, false)
}

func formatTitle(base, langName string, augmentSubpageParts bool) (string, error) {
	l, ok := ByName(langName)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidLanguage, "unknown language name: %q", langName)
	}
	if l.IsDefault() {
		return base, nil
	}
	// master category for the language
	if strings.ToLower(base) == "category:"+strings.ToLower(langName) {
		return base, nil
	}
	if augmentSubpageParts && l.IsInternal() && strings.Contains(base, "/") {
		parts := strings.Split(base, "/")
		for i, p := range parts {
			parts[i] = p + " (" + langName + ")"
		}
		return strings.Join(parts, "/"), nil
	}
	return base + " (" + langName + ")", nil
}
