package catgraph

import (
	"context"
	"strings"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// rootCategory terminates the recursive creation of localized parents.
const rootCategory = "Category:Languages"

// createSummary is the edit summary used for category creation.
const createSummary = "init wanted category"

// CreationReport aggregates the outcome of one category-creation run.
type CreationReport struct {
	Created []string // categories created
	Skipped []string // categories skipped (no default-language counterpart)
}

// CreateCategory creates a localized category modeled on its
// default-language counterpart, then recursively creates the localized
// parents of that counterpart. Creation stops at the terminal root
// category and at ancestors that already exist.
//
// The operation never fabricates a default-language category: when the
// counterpart is missing, the request is logged and skipped, which is a
// valid no-op outcome, not an error. The graph is refreshed after each
// creation, so the operation is not reentrant-safe across concurrent
// callers.
//
// Returns whether a page was created. Errors are reserved for invalid
// input and for failures of the source collaborator.
func (g *Graph) CreateCategory(ctx context.Context, category string) (bool, error) {
	category = wikitext.Canonicalize(category)
	if !strings.HasPrefix(category, "Category:") {
		return false, errors.New(errors.ErrCodeInvalidTitle, "not a category title: %q", category)
	}

	// skip existing categories
	if g.Contains(category) {
		return false, nil
	}

	base, language := lang.DetectLanguage(category)
	if language.IsDefault() {
		g.logger.Warnf("cannot automatically create %s category: [[%s]]", language.Name, category)
		return false, nil
	}

	counterpart, err := lang.FormatTitle(base, lang.Default().Name)
	if err != nil {
		return false, err
	}
	if !g.Contains(counterpart) {
		g.logger.Warnf("cannot create category [[%s]]: %s category [[%s]] does not exist",
			category, lang.Default().Name, counterpart)
		return false, nil
	}

	parents := g.parents[counterpart]
	localized := make([]string, 0, len(parents))
	var content strings.Builder
	for _, p := range parents {
		lp, err := localizedCategory(p, language.Name)
		if err != nil {
			return false, err
		}
		localized = append(localized, lp)
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString("[[" + lp + "]]")
	}

	if err := g.source.CreateCategory(ctx, category, content.String(), createSummary); err != nil {
		return false, err
	}
	if err := g.Update(ctx); err != nil {
		return false, err
	}

	for _, p := range localized {
		if _, err := g.CreateCategory(ctx, p); err != nil {
			return true, err
		}
	}
	return true, nil
}

// localizedCategory maps a default-language parent category to its
// localized form. The terminal root category stays as-is, and the
// master category of a language maps to the master category of the
// target language.
func localizedCategory(category, langName string) (string, error) {
	base, language := lang.DetectLanguage(category)
	if base == rootCategory {
		return base, nil
	}
	if strings.ToLower(base) == "category:"+strings.ToLower(language.Name) {
		return "Category:" + langName, nil
	}
	return lang.FormatTitle(base, langName)
}

// InitWantedCategories fetches the wanted-categories listing and runs
// CreateCategory for every entry, accumulating outcomes. Skip-and-
// continue failures are collected in the report rather than aborting
// the run.
func (g *Graph) InitWantedCategories(ctx context.Context) (*CreationReport, error) {
	wanted, err := g.source.ListWantedCategories(ctx)
	if err != nil {
		return nil, err
	}
	report := &CreationReport{}
	for _, title := range wanted {
		created, err := g.CreateCategory(ctx, title)
		if err != nil {
			return report, err
		}
		if created {
			report.Created = append(report.Created, title)
		} else if !g.Contains(wikitext.Canonicalize(title)) {
			report.Skipped = append(report.Skipped, title)
		}
	}
	return report, nil
}
