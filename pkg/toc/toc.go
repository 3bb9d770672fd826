// Package toc renders category trees as tables of contents, either as
// indented plain text or as a MediaWiki table body. One root renders a
// single tree; two roots render a side-by-side comparison with the
// deeper-first alignment of catgraph.CompareComponents.
package toc

import (
	"sort"
	"strings"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/lang"
)

// Names maps category titles to display names in the target language.
// Lookups are case-insensitive.
type Names map[string]string

// Set stores a localized display name for a category title.
func (n Names) Set(title, name string) { n[strings.ToLower(title)] = name }

// Get returns the display name for a category title, if present.
func (n Names) Get(title string) (string, bool) {
	name, ok := n[strings.ToLower(title)]
	return name, ok
}

// AlsoIn maps language tags to the translation of the "also in" phrase
// used to list the extra parents of a multi-parent category.
type AlsoIn map[string]string

// phrase returns the translation for tag, falling back to English.
func (a AlsoIn) phrase(tag string) string {
	if t, ok := a[tag]; ok {
		return t
	}
	if t, ok := a["en"]; ok {
		return t
	}
	return "also in"
}

// ParseAlsoIn parses a comma-separated list of "tag: translation"
// items. An item without a valid tag prefix is taken as a translation
// for the language of title itself.
func ParseAlsoIn(title, value string) AlsoIn {
	alsoin := AlsoIn{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tag, translation, found := strings.Cut(item, ":")
		tag = strings.TrimSpace(tag)
		translation = strings.TrimSpace(translation)
		if !found || !lang.IsLanguageTag(tag) {
			_, language := lang.DetectLanguage(title)
			tag = language.Tag
			translation = item
		}
		alsoin[tag] = translation
	}
	return alsoin
}

// base carries the inputs shared by both formatters.
type base struct {
	parents map[string][]string
	info    map[string]catgraph.Info
	names   Names
	alsoin  AlsoIn
}

// localize returns the display name of a category: the stored
// translation if one exists, otherwise the base title without the
// namespace prefix.
func (b *base) localize(category string) string {
	if name, ok := b.names.Get(category); ok {
		return name
	}
	_, after, _ := strings.Cut(category, ":")
	pure, _ := lang.DetectLanguage(after)
	return pure
}

// extraParents returns the localized names of the parents of title
// other than the one it was reached through, sorted.
func (b *base) extraParents(title, parent string, render func(string) string) []string {
	var out []string
	for _, p := range b.parents[title] {
		if p == parent {
			continue
		}
		out = append(out, render(p))
	}
	sort.Strings(out)
	return out
}

func tagOf(title string) string {
	_, language := lang.DetectLanguage(title)
	return language.Tag
}

// Formatter renders a table of contents row by row. A nil cell stands
// for an empty column in comparison output.
type Formatter interface {
	FormatRoot(titles ...string)
	FormatRow(cells ...*catgraph.Item)
	String() string
}

// Render walks the category tree(s) under roots and feeds every row to
// the formatter. At most two roots can be rendered at once.
func Render(f Formatter, subcats map[string][]string, roots ...string) error {
	switch len(roots) {
	case 1:
		f.FormatRoot(roots[0])
		for item := range catgraph.Walk(subcats, roots[0]) {
			f.FormatRow(&item)
		}
	case 2:
		f.FormatRoot(roots...)
		for pair := range catgraph.CompareComponents(subcats, roots[0], roots[1]) {
			f.FormatRow(pair.Left, pair.Right)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cannot render %d trees at once", len(roots))
	}
	return nil
}
