// Package header extracts and rebuilds the canonical header block of a
// wiki page.
//
// Per the wiki's style rules the top of every page holds, in order:
//
//  1. Magic words (only {{DISPLAYTITLE:...}} and {{Lowercase title}})
//  2. Category links
//  3. Interlanguage links (if any)
//
// Only these three groups are safe to reorder automatically; everything
// below them (status templates, prose) is left alone. Extract pulls the
// three groups out of a parsed tree, deduplicating as it goes, and Build
// inserts them back in canonical order. The pair is idempotent: running
// extract+build on already canonical markup is a no-op.
//
// Extraction is split into two explicit passes: a read-only scan that
// decides which nodes belong to the header, then a mutation pass that
// excises them and repairs the surrounding whitespace. A structure
// error found during the scan therefore leaves the tree untouched.
package header

import (
	"sort"
	"strings"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// Parts holds the header elements extracted from a page, plus the
// anchor tree they were extracted from (the container they must be
// inserted back into).
type Parts struct {
	Anchor     *wikitext.Tree
	Magics     []*wikitext.Template
	Categories []*wikitext.Link
	LangLinks  []*wikitext.Link
}

// collector accumulates extraction decisions during the read-only scan.
type collector struct {
	parent   *wikitext.Tree
	magics   []*wikitext.Template
	cats     []*wikitext.Link
	langs    []*wikitext.Link
	excision []excision
}

type excision struct {
	container *wikitext.Tree
	node      wikitext.Node
}

// Extract scans tree for header elements, removes them and returns them
// grouped and deduplicated. Magic words and language links come back
// sorted by their markup form; category links keep their original order.
//
// Dedup rules, applied during collection:
//   - magic words: only the first occurrence per directive name is kept,
//     later duplicates are removed from the tree and dropped
//   - category links: a duplicate of an already collected category is
//     left in place as an in-body typo link, not removed
//   - language links: always removed from the tree (so links to renamed
//     pages are silently retargeted), but only the first link per tag is
//     kept; tags with no interlanguage role are dropped entirely
//
// All matched nodes must live under one container; when matches are
// found under two different containers the markup is malformed (e.g. an
// unbalanced conditional-inclusion block) and Extract returns a
// HEADER_STRUCTURE error without modifying the tree. Content inside
// <includeonly> is never scanned.
func Extract(tree *wikitext.Tree) (*Parts, error) {
	c := &collector{}

	// templates across the whole document first, then links, matching
	// the order the elements are rebuilt in
	if err := c.scan(tree, c.collectTemplate); err != nil {
		return nil, err
	}
	if err := c.scan(tree, c.collectLink); err != nil {
		return nil, err
	}

	sort.Slice(c.magics, func(i, j int) bool { return c.magics[i].String() < c.magics[j].String() })
	sort.Slice(c.langs, func(i, j int) bool { return c.langs[i].String() < c.langs[j].String() })

	for _, e := range c.excision {
		e.container.RemoveAndSquash(e.node)
	}

	anchor := c.parent
	if anchor == nil {
		// page without any header elements
		anchor = tree
	}
	return &Parts{
		Anchor:     anchor,
		Magics:     c.magics,
		Categories: c.cats,
		LangLinks:  c.langs,
	}, nil
}

// scan walks container and its tag bodies, invoking visit for each node
// together with its direct container. <includeonly> regions are skipped.
func (c *collector) scan(container *wikitext.Tree, visit func(*wikitext.Tree, wikitext.Node) error) error {
	for _, n := range container.Nodes() {
		if tag, ok := n.(*wikitext.Tag); ok {
			if tag.Name == "includeonly" || tag.Body == nil {
				continue
			}
			if err := c.scan(tag.Body, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(container, n); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) collectTemplate(container *wikitext.Tree, n wikitext.Node) error {
	tmpl, ok := n.(*wikitext.Template)
	if !ok || !isMagicWord(tmpl) {
		return nil
	}
	if err := c.mark(container, tmpl); err != nil {
		return err
	}
	name := wikitext.Canonicalize(tmpl.Name)
	for _, m := range c.magics {
		if wikitext.Canonicalize(m.Name) == name {
			return nil // duplicate directive, first one survives
		}
	}
	c.magics = append(c.magics, tmpl)
	return nil
}

func (c *collector) collectLink(container *wikitext.Tree, n wikitext.Node) error {
	link, ok := n.(*wikitext.Link)
	if !ok {
		return nil
	}
	prefix := strings.ToLower(link.TargetPrefix())
	switch {
	case prefix == "category":
		for _, cat := range c.cats {
			if wikitext.TitlesEqual(cat.Target, link.Target) {
				// duplicate category links are considered typos, e.g.
				// [[Category:foo]] instead of [[:Category:foo]]; leave
				// them in the body
				return nil
			}
		}
		if err := c.mark(container, link); err != nil {
			return err
		}
		c.cats = append(c.cats, link)
	case lang.IsLanguageTag(prefix):
		// always remove language links to handle renaming of pages
		if err := c.mark(container, link); err != nil {
			return err
		}
		if !lang.IsInterlanguageTag(prefix) {
			return nil
		}
		for _, l := range c.langs {
			if strings.ToLower(l.TargetPrefix()) == prefix {
				return nil
			}
		}
		c.langs = append(c.langs, link)
	}
	return nil
}

// mark records that node is a header element to be excised from
// container, enforcing the single-container rule.
func (c *collector) mark(container *wikitext.Tree, node wikitext.Node) error {
	if c.parent == nil {
		c.parent = container
	} else if c.parent != container {
		return errors.New(errors.ErrCodeHeaderStructure, "header elements found under multiple containers")
	}
	c.excision = append(c.excision, excision{container: container, node: node})
	return nil
}

func isMagicWord(tmpl *wikitext.Template) bool {
	if wikitext.Canonicalize(tmpl.Name) == "Lowercase title" {
		return true
	}
	name := tmpl.Name
	if i := strings.Index(name, ":"); i >= 0 {
		return strings.TrimSpace(name[:i]) == "DISPLAYTITLE"
	}
	return false
}

// Build inserts the header parts back at the start of their anchor, in
// canonical order: magics, then categories, then language links, each
// followed by a newline. A leading blank-line run of the anchor's first
// text node is stripped first so the header does not float above a gap.
// tree is the root of the page; when the anchor is a nested container
// (e.g. a <noinclude> body) the header starts on a fresh line.
func Build(tree *wikitext.Tree, p *Parts) {
	stripLeadingBlankLines(p.Anchor)

	pos := 0
	if p.Anchor != tree {
		p.Anchor.Insert(pos, &wikitext.Text{Value: "\n"})
		pos++
	}
	insert := func(n wikitext.Node) {
		p.Anchor.Insert(pos, n)
		p.Anchor.Insert(pos+1, &wikitext.Text{Value: "\n"})
		pos += 2
	}
	for _, m := range p.Magics {
		insert(m)
	}
	for _, cat := range p.Categories {
		insert(cat)
	}
	for _, l := range p.LangLinks {
		insert(l)
	}
}

// Fix is the extract+build round trip: it rewrites tree so its header
// block is canonical.
func Fix(tree *wikitext.Tree) error {
	p, err := Extract(tree)
	if err != nil {
		return err
	}
	Build(tree, p)
	return nil
}

func stripLeadingBlankLines(anchor *wikitext.Tree) {
	if anchor.Len() == 0 {
		return
	}
	text, ok := anchor.At(0).(*wikitext.Text)
	if !ok {
		return
	}
	for text.Value != "" {
		line := text.Value
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i+1]
		}
		if strings.TrimSpace(line) != "" {
			break
		}
		text.Value = text.Value[len(line):]
	}
}
