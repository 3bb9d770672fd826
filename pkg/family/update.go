package family

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/header"
	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// EditSummary is used for langlink edits unless the updater carries an
// override.
const EditSummary = "update interlanguage links"

// Pages carrying either of these magic words opt out of automated
// header rewriting.
var optOutMagics = []string{"__NOTOC__", "__NOEDITSECTION__"}

// UpdatePage rebuilds the header block of text with the supplied
// langlinks. With weak set, langlinks already present in the text are
// kept for tags the supplied set does not cover; otherwise the
// supplied set replaces them entirely.
//
// Pages that opt out of rewriting and pages with a malformed header
// are returned unchanged together with an error carrying
// ErrCodePageSkipped or ErrCodeHeaderStructure.
func UpdatePage(title, text string, links []LangLink, weak bool) (string, error) {
	for _, magic := range optOutMagics {
		if strings.Contains(text, magic) {
			return text, errors.New(errors.ErrCodePageSkipped, "%s: disabled by %s", title, magic)
		}
	}

	tree := wikitext.Parse(text)
	parts, err := header.Extract(tree)
	if err != nil {
		return text, err
	}

	merged := make([]*wikitext.Link, 0, len(links)+len(parts.LangLinks))
	tags := make(map[string]bool, len(links))
	for _, ll := range links {
		tags[ll.Tag] = true
		merged = append(merged, &wikitext.Link{
			Target: fmt.Sprintf("%s:%s", ll.Tag, ll.Title),
		})
	}
	if weak {
		for _, l := range parts.LangLinks {
			if !tags[strings.ToLower(l.TargetPrefix())] {
				merged = append(merged, l)
			}
		}
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].String() < merged[j].String() })
	parts.LangLinks = merged

	header.Build(tree, parts)
	return tree.String(), nil
}

// FixPageCategories rewrites the category links of text so that each
// one carries the language suffix of the page itself. Category links
// already in the page's language are left alone.
func FixPageCategories(title, text string) (string, error) {
	_, pageLang := lang.DetectLanguage(title)

	tree := wikitext.Parse(text)
	parts, err := header.Extract(tree)
	if err != nil {
		return text, err
	}

	for _, cat := range parts.Categories {
		base, catLang := lang.DetectLanguage(strings.TrimSpace(cat.Target))
		if catLang.Name == pageLang.Name {
			continue
		}
		fixed, err := lang.FormatTitle(base, pageLang.Name)
		if err != nil {
			return text, err
		}
		cat.Target = fixed
	}

	header.Build(tree, parts)
	return tree.String(), nil
}

// FindOrphans returns the titles of non-default-language pages whose
// computed langlink set is empty, sorted by title.
func (r *Resolver) FindOrphans() ([]string, error) {
	var orphans []string
	for title := range r.pages {
		if !IsValidInterlanguage(title) {
			continue
		}
		_, language := lang.DetectLanguage(title)
		if language.IsDefault() {
			continue
		}
		links, err := r.GetLangLinks(title)
		if err != nil {
			return nil, err
		}
		if len(links) == 0 {
			orphans = append(orphans, title)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

// PageContent is a revision snapshot fetched for editing.
type PageContent struct {
	Title     string
	ID        int
	Text      string
	Timestamp time.Time
}

// ContentSource fetches page text and writes edits back. It is
// satisfied by the wiki API client.
type ContentSource interface {
	FetchPageContent(ctx context.Context, titles []string) ([]PageContent, error)
	EditPage(ctx context.Context, title string, pageID int, text, summary string, baseTimestamp time.Time) error
}

// Skip records one page the updater left untouched and why.
type Skip struct {
	Title  string
	Reason string
}

// Report summarizes one updater run.
type Report struct {
	RunID   string
	Updated []string
	Skipped []Skip
	Failed  []Skip
}

// Updater applies computed langlink sets to all pages of a Resolver.
type Updater struct {
	resolver *Resolver
	source   ContentSource
	dryRun   bool

	// Confirm, when set, is consulted before every edit. Returning
	// false leaves the page untouched and records it as skipped;
	// returning an error stops the run. Dry runs never consult it.
	Confirm func(title string) (bool, error)

	// Summary, when non-empty, replaces EditSummary on every edit.
	Summary string
}

// NewUpdater builds an Updater. With dryRun set, no edits are written
// and the report records what would have changed.
func NewUpdater(resolver *Resolver, source ContentSource, dryRun bool) *Updater {
	return &Updater{resolver: resolver, source: source, dryRun: dryRun}
}

// fetchBatchSize is the number of titles requested per content fetch.
const fetchBatchSize = 50

// UpdateAll recomputes langlinks for every page and edits those whose
// recorded links differ. Individual page failures are recorded in the
// report and never abort the run.
func (u *Updater) UpdateAll(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}

	titles := make([]string, 0, len(u.resolver.pages))
	for title := range u.resolver.pages {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	computed := make(map[string][]LangLink)
	var stale []string
	for _, title := range titles {
		if !IsValidInterlanguage(title) {
			report.Skipped = append(report.Skipped, Skip{Title: title, Reason: "language not supported for interlanguage links"})
			continue
		}
		links, err := u.resolver.GetLangLinks(title)
		if err != nil {
			report.Failed = append(report.Failed, Skip{Title: title, Reason: err.Error()})
			continue
		}
		if !NeedsUpdate(u.resolver.pages[title], links) {
			continue
		}
		computed[title] = links
		stale = append(stale, title)
	}

	for start := 0; start < len(stale); start += fetchBatchSize {
		end := min(start+fetchBatchSize, len(stale))
		contents, err := u.source.FetchPageContent(ctx, stale[start:end])
		if err != nil {
			return report, err
		}
		for _, content := range contents {
			if err := u.updateOne(ctx, content, computed[content.Title], report); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

func (u *Updater) updateOne(ctx context.Context, content PageContent, links []LangLink, report *Report) error {
	newText, err := UpdatePage(content.Title, content.Text, links, false)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodePageSkipped:
			report.Skipped = append(report.Skipped, Skip{Title: content.Title, Reason: err.Error()})
			return nil
		case errors.ErrCodeHeaderStructure:
			report.Failed = append(report.Failed, Skip{Title: content.Title, Reason: err.Error()})
			return nil
		}
		return err
	}
	if newText == content.Text {
		return nil
	}
	if u.dryRun {
		report.Updated = append(report.Updated, content.Title)
		return nil
	}
	if u.Confirm != nil {
		ok, err := u.Confirm(content.Title)
		if err != nil {
			return err
		}
		if !ok {
			report.Skipped = append(report.Skipped, Skip{Title: content.Title, Reason: "declined"})
			return nil
		}
	}
	summary := u.Summary
	if summary == "" {
		summary = EditSummary
	}
	if err := u.source.EditPage(ctx, content.Title, content.ID, newText, summary, content.Timestamp); err != nil {
		if errors.GetCode(err) == errors.ErrCodeEditConflict {
			report.Failed = append(report.Failed, Skip{Title: content.Title, Reason: err.Error()})
			return nil
		}
		return err
	}
	report.Updated = append(report.Updated, content.Title)
	return nil
}
