// Package lang models the language-suffix naming convention used for
// localized page titles on the wiki.
//
// Localized pages carry a parenthesized language name at the end of the
// title, e.g. "Installation guide (Česky)" is the Czech variant of
// "Installation guide". This package provides the static language table
// and the bidirectional mapping between a full title and its
// (base title, language) pair.
//
// The language table is immutable and loaded at process start. Languages
// are classified by their interlanguage-link role:
//   - Internal: participates in automated link family resolution and
//     automatic category creation.
//   - External: accepted as a valid cross-language link target but never
//     used to merge page families.
//   - None: the tag exists but has no interlanguage role.
package lang

import (
	"strings"
)

// Class is the interlanguage-link classification of a language.
type Class int

const (
	// ClassNone means the language has no interlanguage role.
	ClassNone Class = iota
	// ClassInternal means the language participates in family resolution.
	ClassInternal
	// ClassExternal means links to the language are accepted but never
	// used to merge families.
	ClassExternal
)

// Language describes one entry of the static language table.
type Language struct {
	Name    string // localized name, used in title suffixes (e.g. "Čeština")
	English string // English name (e.g. "Czech")
	Tag     string // language subtag, lowercase (e.g. "cs")
	RTL     bool   // right-to-left script
	Class   Class  // interlanguage-link classification
}

// IsInternal reports whether the language is classified Internal.
func (l Language) IsInternal() bool { return l.Class == ClassInternal }

// IsExternal reports whether the language is classified External.
func (l Language) IsExternal() bool { return l.Class == ClassExternal }

// IsInterlanguage reports whether links with this language's tag act as
// interlanguage links at all.
func (l Language) IsInterlanguage() bool { return l.Class != ClassNone }

// IsDefault reports whether this is the wiki's default language.
func (l Language) IsDefault() bool { return l.Name == defaultLanguage }

// defaultLanguage is the name of the wiki's default language. Pages in
// the default language carry no title suffix.
const defaultLanguage = "English"

// languages is the static language table, sorted by subtag.
var languages = []Language{
	{Name: "العربية", English: "Arabic", Tag: "ar", RTL: true, Class: ClassInternal},
	{Name: "Български", English: "Bulgarian", Tag: "bg", Class: ClassInternal},
	{Name: "Bosanski", English: "Bosnian", Tag: "bs", Class: ClassInternal},
	{Name: "Català", English: "Catalan", Tag: "ca", Class: ClassNone},
	{Name: "Čeština", English: "Czech", Tag: "cs", Class: ClassInternal},
	{Name: "Dansk", English: "Danish", Tag: "da", Class: ClassInternal},
	{Name: "Deutsch", English: "German", Tag: "de", Class: ClassExternal},
	{Name: "Ελληνικά", English: "Greek", Tag: "el", Class: ClassInternal},
	{Name: "English", English: "English", Tag: "en", Class: ClassInternal},
	{Name: "Esperanto", English: "Esperanto", Tag: "eo", Class: ClassNone},
	{Name: "Español", English: "Spanish", Tag: "es", Class: ClassInternal},
	{Name: "فارسی", English: "Persian", Tag: "fa", RTL: true, Class: ClassExternal},
	{Name: "Suomi", English: "Finnish", Tag: "fi", Class: ClassInternal},
	{Name: "Français", English: "French", Tag: "fr", Class: ClassExternal},
	{Name: "עברית", English: "Hebrew", Tag: "he", RTL: true, Class: ClassInternal},
	{Name: "Hrvatski", English: "Croatian", Tag: "hr", Class: ClassInternal},
	{Name: "Magyar", English: "Hungarian", Tag: "hu", Class: ClassInternal},
	{Name: "Bahasa Indonesia", English: "Indonesian", Tag: "id", Class: ClassInternal},
	{Name: "Italiano", English: "Italian", Tag: "it", Class: ClassInternal},
	{Name: "日本語", English: "Japanese", Tag: "ja", Class: ClassExternal},
	{Name: "한국어", English: "Korean", Tag: "ko", Class: ClassInternal},
	{Name: "Lietuvių", English: "Lithuanian", Tag: "lt", Class: ClassInternal},
	{Name: "Norsk Bokmål", English: "Norwegian (Bokmål)", Tag: "nb", Class: ClassNone},
	{Name: "Nederlands", English: "Dutch", Tag: "nl", Class: ClassInternal},
	{Name: "Polski", English: "Polish", Tag: "pl", Class: ClassInternal},
	{Name: "Português", English: "Portuguese", Tag: "pt", Class: ClassInternal},
	{Name: "Română", English: "Romanian", Tag: "ro", Class: ClassNone},
	{Name: "Русский", English: "Russian", Tag: "ru", Class: ClassInternal},
	{Name: "Slovenčina", English: "Slovak", Tag: "sk", Class: ClassInternal},
	{Name: "Српски", English: "Serbian", Tag: "sr", Class: ClassInternal},
	{Name: "Svenska", English: "Swedish", Tag: "sv", Class: ClassExternal},
	{Name: "ไทย", English: "Thai", Tag: "th", Class: ClassInternal},
	{Name: "Türkçe", English: "Turkish", Tag: "tr", Class: ClassInternal},
	{Name: "Українська", English: "Ukrainian", Tag: "uk", Class: ClassInternal},
	{Name: "Tiếng Việt", English: "Vietnamese", Tag: "vi", Class: ClassNone},
	{Name: "粵語", English: "Cantonese", Tag: "yue", Class: ClassNone},
	{Name: "简体中文", English: "Chinese (Simplified)", Tag: "zh-hans", Class: ClassInternal},
	{Name: "正體中文", English: "Chinese (Traditional)", Tag: "zh-hant", Class: ClassInternal},
}

// index maps, built once at init from the languages table.
var (
	byName    = make(map[string]Language, len(languages))
	byEnglish = make(map[string]Language, len(languages))
	byTag     = make(map[string]Language, len(languages))
)

func init() {
	for _, l := range languages {
		byName[l.Name] = l
		byEnglish[l.English] = l
		byTag[l.Tag] = l
	}
}

// Default returns the wiki's default language.
func Default() Language {
	return byName[defaultLanguage]
}

// ByName looks up a language by its localized name. The match is
// case-sensitive, as localized names appear verbatim in title suffixes.
func ByName(name string) (Language, bool) {
	l, ok := byName[name]
	return l, ok
}

// ByEnglish looks up a language by its English name.
func ByEnglish(name string) (Language, bool) {
	l, ok := byEnglish[name]
	return l, ok
}

// ByTag looks up a language by its subtag. Tags are matched
// case-insensitively, as MediaWiki recognizes them that way.
func ByTag(tag string) (Language, bool) {
	l, ok := byTag[strings.ToLower(tag)]
	return l, ok
}

// IsLanguageName reports whether name is a known localized language name.
func IsLanguageName(name string) bool {
	_, ok := byName[name]
	return ok
}

// IsLanguageTag reports whether tag is a known language subtag.
func IsLanguageTag(tag string) bool {
	_, ok := byTag[strings.ToLower(tag)]
	return ok
}

// IsInterlanguageTag reports whether tag is classified Internal or
// External, i.e. whether a link with this prefix acts as an
// interlanguage link.
func IsInterlanguageTag(tag string) bool {
	l, ok := byTag[strings.ToLower(tag)]
	return ok && l.IsInterlanguage()
}

// IsInternalTag reports whether tag is classified Internal.
func IsInternalTag(tag string) bool {
	l, ok := byTag[strings.ToLower(tag)]
	return ok && l.IsInternal()
}

// IsExternalTag reports whether tag is classified External.
func IsExternalTag(tag string) bool {
	l, ok := byTag[strings.ToLower(tag)]
	return ok && l.IsExternal()
}

// Names returns the localized names of all known languages, in table order.
func Names() []string {
	out := make([]string, len(languages))
	for i, l := range languages {
		out[i] = l.Name
	}
	return out
}

// Tags returns the subtags of all known languages, in table order.
func Tags() []string {
	out := make([]string, len(languages))
	for i, l := range languages {
		out[i] = l.Tag
	}
	return out
}

// InternalTags returns the subtags of all languages classified Internal.
func InternalTags() []string {
	var out []string
	for _, l := range languages {
		if l.IsInternal() {
			out = append(out, l.Tag)
		}
	}
	return out
}

// ExternalTags returns the subtags of all languages classified External.
func ExternalTags() []string {
	var out []string
	for _, l := range languages {
		if l.IsExternal() {
			out = append(out, l.Tag)
		}
	}
	return out
}

// All returns the full language table, in table order. The returned slice
// is a copy; the table itself is immutable.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}
