// Package family groups wiki pages into language families and computes
// the authoritative set of interlanguage links for each family member.
//
// A family is the set of all language variants of one logical article,
// keyed by the case-insensitive base title. Families are derived data:
// they are recomputed from scratch from a full page listing and never
// persisted or mutated incrementally.
//
// Link resolution follows a two-phase pull. Internal links are
// cross-validated by the wiki and may be pulled from any family member;
// external links are not, so they must come from a single trusted
// source — the default-language "hub" page — whenever one is known.
// Only when no hub is present are external links accepted from the
// other members. This prevents stale or conflicting external links
// from accumulating across translations.
package family

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// LangLink is one cross-language link: a language tag and the target
// title (without the language suffix).
type LangLink struct {
	Tag   string
	Title string
}

// Page is one entry of the full page listing.
type Page struct {
	ID        int
	Title     string
	Namespace int
	LangLinks []LangLink // outbound links as recorded by the wiki
}

// Resolver holds the family grouping derived from one generation of the
// page listing. Create a new Resolver whenever the listing is
// refreshed; instances are read-only after construction and safe to
// discard at any point.
type Resolver struct {
	logger    *log.Logger
	pages     map[string]*Page  // exact title -> page
	canonical map[string]bool   // canonicalized titles, for existence checks
	redirects map[string]string // redirect source -> target
	families  map[string][]*Page
	index     map[string]string // member title -> family key
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRedirects supplies the redirect table used to resolve link
// targets that point at redirect pages.
func WithRedirects(redirects map[string]string) Option {
	return func(r *Resolver) { r.redirects = redirects }
}

// WithLogger sets the logger used for per-page warnings.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver groups pages into families. Pages whose language has no
// interlanguage role are excluded from grouping entirely.
func NewResolver(pages []Page, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		logger:    log.Default(),
		pages:     make(map[string]*Page, len(pages)),
		canonical: make(map[string]bool, len(pages)),
		families:  make(map[string][]*Page),
		index:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}

	sorted := make([]*Page, 0, len(pages))
	for i := range pages {
		p := &pages[i]
		r.pages[p.Title] = p
		r.canonical[wikitext.Canonicalize(p.Title)] = true
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })

	if err := r.group(sorted, false); err != nil {
		return nil, err
	}
	for key, members := range r.families {
		for _, p := range members {
			r.index[p.Title] = key
		}
	}
	return r, nil
}

// group splits pages into families keyed by base title. The key is
// case-insensitive by default; when a case-insensitive group would hold
// two pages of the same language, that group alone is re-grouped
// case-sensitively (titles differing only in letter case can denote
// genuinely distinct pages).
func (r *Resolver) group(pages []*Page, caseSensitive bool) error {
	groups := make(map[string][]*Page)
	for _, p := range pages {
		base, language := lang.DetectLanguage(p.Title)
		if !language.IsInterlanguage() {
			continue
		}
		key := base
		if !caseSensitive {
			key = strings.ToLower(key)
		}
		groups[key] = append(groups[key], p)
	}

	for key, members := range groups {
		tags := make(map[string]bool)
		for _, p := range members {
			_, language := lang.DetectLanguage(p.Title)
			tags[language.Tag] = true
		}
		switch {
		case len(tags) == len(members):
			r.families[key] = members
		case !caseSensitive:
			r.logger.Debug("re-grouping family case-sensitively", "family", key)
			if err := r.group(members, true); err != nil {
				return err
			}
		default:
			// distinct titles cannot collide case-sensitively
			return errors.New(errors.ErrCodeInternal, "unresolvable language conflict in family %q", key)
		}
	}
	return nil
}

// Families returns the family map: key to member pages.
func (r *Resolver) Families() map[string][]*Page { return r.families }

// FamilyOf returns the family key of a member title.
func (r *Resolver) FamilyOf(title string) (string, bool) {
	key, ok := r.index[title]
	return key, ok
}

// PageExists reports whether a title exists in the page listing, under
// MediaWiki title normalization.
func (r *Resolver) PageExists(title string) bool {
	return r.canonical[wikitext.Canonicalize(title)]
}

// IsValidInterlanguage reports whether interlanguage links are
// supported for the language of the given title.
func IsValidInterlanguage(title string) bool {
	_, language := lang.DetectLanguage(title)
	return language.IsInterlanguage()
}

// resolveRedirect follows the redirect table from title to its final
// target, stripping any fragment. A cycle or a missing entry stops the
// resolution at the last known title.
func (r *Resolver) resolveRedirect(title string) string {
	seen := map[string]bool{title: true}
	for {
		target, ok := r.redirects[title]
		if !ok {
			return title
		}
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		if seen[target] {
			return title
		}
		seen[target] = true
		title = target
	}
}
