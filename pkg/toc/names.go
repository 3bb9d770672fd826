package toc

import (
	"strings"

	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// ExtractNames collects localized category names from the catlinks of
// an existing ToC page, so that a rerender preserves the translations
// editors wrote into it. Only piped links with a leading colon count,
// and trivial labels (the category's own title or its base) are
// skipped so that the formatter defaults apply to them.
func ExtractNames(content string) Names {
	names := Names{}
	collectNames(wikitext.Parse(content), names)
	return names
}

func collectNames(tree *wikitext.Tree, names Names) {
	for _, node := range tree.Nodes() {
		switch n := node.(type) {
		case *wikitext.Tag:
			// catlinks sit inside the <span> cells of the table
			if n.Body != nil {
				collectNames(n.Body, names)
			}
		case *wikitext.Link:
			title, label, ok := localizedCatlink(n)
			if ok {
				names.Set(title, label)
			}
		}
	}
}

// localizedCatlink returns the category title and label of a catlink
// whose label is a genuine translation.
func localizedCatlink(link *wikitext.Link) (title, label string, ok bool) {
	target := strings.TrimSpace(link.Target)
	if !link.Piped || !strings.HasPrefix(target, ":") {
		return "", "", false
	}

	ns, pagename, found := strings.Cut(strings.TrimPrefix(target, ":"), ":")
	if !found || !strings.EqualFold(strings.TrimSpace(ns), "Category") {
		return "", "", false
	}
	pagename = wikitext.Canonicalize(pagename)
	title = "Category:" + pagename

	label = strings.TrimSpace(link.Label)
	if label == "" {
		return "", "", false
	}
	pure, _ := lang.DetectLanguage(pagename)
	if strings.EqualFold(label, pagename) || strings.EqualFold(label, pure) {
		return "", "", false
	}
	return title, label, true
}
