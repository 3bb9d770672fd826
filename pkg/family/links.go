package family

import (
	"sort"
	"strings"

	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// memberSet accumulates family members in insertion order with at most
// one entry per language tag.
type memberSet struct {
	tags    map[string]bool
	entries []LangLink
}

func newMemberSet() *memberSet {
	return &memberSet{tags: make(map[string]bool)}
}

func (s *memberSet) has(tag string) bool { return s.tags[tag] }

func (s *memberSet) add(tag, title string) {
	if s.tags[tag] {
		return
	}
	s.tags[tag] = true
	s.entries = append(s.entries, LangLink{Tag: tag, Title: title})
}

func (s *memberSet) titleFor(tag string) (string, bool) {
	for _, e := range s.entries {
		if e.Tag == tag {
			return e.Title, true
		}
	}
	return "", false
}

// titleFromLangLink expands a raw langlink into a full page title:
// the language suffix is appended, internal titles are additionally
// normalized and chased through the redirect table.
func (r *Resolver) titleFromLangLink(ll LangLink) (string, bool) {
	language, ok := lang.ByTag(ll.Tag)
	if !ok {
		return "", false
	}
	title, err := lang.FormatTitle(ll.Title, language.Name)
	if err != nil {
		return "", false
	}
	if language.IsInternal() {
		title = wikitext.Canonicalize(title)
		title = r.resolveRedirect(title)
	}
	return title, true
}

// isValidInternal reports whether an internal langlink points at an
// existing page. Titles with subpage components are checked in both
// suffix placements: only the last component augmented, and every
// component augmented.
func (r *Resolver) isValidInternal(tag, title string) bool {
	if !lang.IsInternalTag(tag) {
		return false
	}
	language, _ := lang.ByTag(tag)
	if strings.Contains(title, "/") {
		shallow, err := lang.FormatTitleShallow(title, language.Name)
		if err == nil && r.PageExists(shallow) {
			return true
		}
	}
	full, err := lang.FormatTitle(title, language.Name)
	if err != nil {
		return false
	}
	return r.PageExists(full)
}

// pull walks the langlinks of one page and adds every link whose tag is
// not yet represented and whose target passes the accept predicate.
func (r *Resolver) pull(set *memberSet, page *Page, accept func(tag, title string) bool) {
	for _, ll := range page.LangLinks {
		if set.has(ll.Tag) {
			continue
		}
		full, ok := r.titleFromLangLink(ll)
		if !ok {
			continue
		}
		title, _ := lang.DetectLanguage(full)
		if accept(ll.Tag, title) {
			set.add(ll.Tag, title)
		}
	}
}

// TitlesInFamily resolves the complete membership of the family
// containing title. The result holds one entry per language tag, each
// with the base title of that member.
//
// Phase one pulls internal links from every member, validating each
// against the page listing. Phase two pulls external links: from the
// hub page when the family has one and the hub is trusted for this
// member, otherwise from all members.
func (r *Resolver) TitlesInFamily(title string) ([]LangLink, error) {
	key, ok := r.index[title]
	if !ok {
		return nil, nil
	}
	members := r.families[key]

	masterBase, masterLang := lang.DetectLanguage(title)
	hubTag := lang.Default().Tag

	set := newMemberSet()
	for _, p := range members {
		base, language := lang.DetectLanguage(p.Title)
		set.add(language.Tag, base)
	}
	hadHubEarly := set.has(hubTag)

	acceptInternal := func(tag, t string) bool { return r.isValidInternal(tag, t) }
	acceptExternal := func(tag, t string) bool { return lang.IsExternalTag(tag) }
	acceptAny := func(tag, t string) bool {
		return lang.IsExternalTag(tag) || r.isValidInternal(tag, t)
	}

	for _, p := range members {
		r.pull(set, p, acceptInternal)
	}

	pulledFromHub := false
	if hubBase, ok := set.titleFor(hubTag); ok {
		hubTitle, err := lang.FormatTitle(hubBase, lang.Default().Name)
		if err == nil {
			hubPage, ok := r.pages[hubTitle]
			if !ok {
				r.logger.Debug("hub page missing from listing", "title", hubTitle)
			} else {
				switch {
				case masterLang.Tag == hubTag || hadHubEarly:
					r.pull(set, hubPage, acceptAny)
					pulledFromHub = true
				default:
					// The hub was pulled in through another member's
					// links. Trust it only if its own family agrees
					// that this page belongs to it.
					hubSet, err := r.TitlesInFamily(hubTitle)
					if err != nil {
						return nil, err
					}
					agrees := false
					conflicting := false
					for _, e := range hubSet {
						if e.Title == masterBase {
							agrees = true
						}
						if e.Tag == masterLang.Tag {
							conflicting = true
						}
					}
					if agrees || !conflicting {
						r.pull(set, hubPage, acceptAny)
						pulledFromHub = true
					}
				}
			}
		}
	}
	if !pulledFromHub {
		for _, p := range members {
			r.pull(set, p, acceptExternal)
		}
	}

	return set.entries, nil
}

// GetLangLinks computes the ordered langlink set that the page with
// the given title should carry: its whole family minus the page
// itself, sorted by language tag. For members whose full title carries
// a subpage, the link target is re-expanded so that only the final
// suffix is substituted by the link prefix.
func (r *Resolver) GetLangLinks(title string) ([]LangLink, error) {
	entries, err := r.TitlesInFamily(title)
	if err != nil {
		return nil, err
	}

	_, language := lang.DetectLanguage(title)

	links := make([]LangLink, 0, len(entries))
	for _, e := range entries {
		if e.Tag == language.Tag {
			continue
		}
		links = append(links, e)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Tag < links[j].Tag })

	for i, e := range links {
		member, ok := lang.ByTag(e.Tag)
		if !ok {
			continue
		}
		expanded, err := lang.FormatTitle(e.Title, member.Name)
		if err != nil {
			continue
		}
		if r.PageExists(expanded) {
			base, _ := lang.DetectLanguageShallow(expanded)
			links[i].Title = base
		}
	}
	return links, nil
}

// NeedsUpdate reports whether the langlinks recorded for page differ
// from the computed set. Comparison is order-insensitive.
func NeedsUpdate(page *Page, links []LangLink) bool {
	if len(page.LangLinks) != len(links) {
		return true
	}
	have := make(map[LangLink]bool, len(page.LangLinks))
	for _, ll := range page.LangLinks {
		have[ll] = true
	}
	for _, ll := range links {
		if !have[ll] {
			return true
		}
	}
	return false
}
