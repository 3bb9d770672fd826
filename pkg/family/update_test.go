package family

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"
	"time"

	"github.com/jkral/interwiki/pkg/errors"
)

func TestUpdatePage(t *testing.T) {
	got, err := UpdatePage("Page (Čeština)", "Body text.\n", []LangLink{
		{Tag: "en", Title: "Page"},
	}, false)
	if err != nil {
		t.Fatalf("UpdatePage() error: %v", err)
	}
	if got != "[[en:Page]]\nBody text.\n" {
		t.Errorf("got %q", got)
	}
}

func TestUpdatePageReplacesExistingLinks(t *testing.T) {
	text := "[[de:Alt]]\nBody.\n"
	got, err := UpdatePage("Page (Čeština)", text, []LangLink{
		{Tag: "en", Title: "Page"},
	}, false)
	if err != nil {
		t.Fatalf("UpdatePage() error: %v", err)
	}
	if got != "[[en:Page]]\nBody.\n" {
		t.Errorf("got %q, existing links should be replaced", got)
	}
}

func TestUpdatePageWeakKeepsUncoveredTags(t *testing.T) {
	text := "[[de:Alt]]\nBody.\n"
	got, err := UpdatePage("Page (Čeština)", text, []LangLink{
		{Tag: "en", Title: "Page"},
	}, true)
	if err != nil {
		t.Fatalf("UpdatePage() error: %v", err)
	}
	if got != "[[de:Alt]]\n[[en:Page]]\nBody.\n" {
		t.Errorf("got %q, uncovered existing link should survive a weak update", got)
	}
}

func TestUpdatePageOptOut(t *testing.T) {
	text := "__NOTOC__\nBody.\n"
	got, err := UpdatePage("Page (Čeština)", text, nil, false)
	if !errors.Is(err, errors.ErrCodePageSkipped) {
		t.Fatalf("error = %v, want PAGE_SKIPPED", err)
	}
	if got != text {
		t.Error("opted-out page must be returned unchanged")
	}
}

func TestUpdatePageMalformedHeader(t *testing.T) {
	text := "[[Category:A]]<noinclude>[[Category:B]]</noinclude>"
	got, err := UpdatePage("Page (Čeština)", text, nil, false)
	if !errors.Is(err, errors.ErrCodeHeaderStructure) {
		t.Fatalf("error = %v, want HEADER_STRUCTURE", err)
	}
	if got != text {
		t.Error("malformed page must be returned unchanged")
	}
}

func TestFixPageCategories(t *testing.T) {
	got, err := FixPageCategories("Stránka (Čeština)", "[[Category:Networking]]\nBody.\n")
	if err != nil {
		t.Fatalf("FixPageCategories() error: %v", err)
	}
	if got != "[[Category:Networking (Čeština)]]\nBody.\n" {
		t.Errorf("got %q", got)
	}
}

func TestFixPageCategoriesAlreadyLocalized(t *testing.T) {
	text := "[[Category:Networking (Čeština)]]\nBody.\n"
	got, err := FixPageCategories("Stránka (Čeština)", text)
	if err != nil {
		t.Fatalf("FixPageCategories() error: %v", err)
	}
	if got != text {
		t.Errorf("got %q, localized categories should be untouched", got)
	}
}

func TestFindOrphans(t *testing.T) {
	r := mustResolver(t, []Page{
		{Title: "Installation guide"},
		{Title: "Installation guide (Čeština)"},
		{Title: "Osamocená stránka (Čeština)"},
		{Title: "Paĝo (Esperanto)"},
	})

	orphans, err := r.FindOrphans()
	if err != nil {
		t.Fatalf("FindOrphans() error: %v", err)
	}
	want := []string{"Osamocená stránka (Čeština)"}
	if !reflect.DeepEqual(orphans, want) {
		t.Errorf("orphans = %v, want %v", orphans, want)
	}
}

// fakeContentSource serves page text from a map and records edits.
type fakeContentSource struct {
	texts     map[string]string
	edits     map[string]string
	summaries map[string]string
	conflict  map[string]bool
}

func newFakeContentSource() *fakeContentSource {
	return &fakeContentSource{
		texts:     map[string]string{},
		edits:     map[string]string{},
		summaries: map[string]string{},
		conflict:  map[string]bool{},
	}
}

func (s *fakeContentSource) FetchPageContent(ctx context.Context, titles []string) ([]PageContent, error) {
	out := make([]PageContent, 0, len(titles))
	for i, title := range titles {
		out = append(out, PageContent{
			Title:     title,
			ID:        i + 1,
			Text:      s.texts[title],
			Timestamp: time.Unix(1700000000, 0),
		})
	}
	return out, nil
}

func (s *fakeContentSource) EditPage(ctx context.Context, title string, pageID int, text, summary string, baseTimestamp time.Time) error {
	if s.conflict[title] {
		return errors.New(errors.ErrCodeEditConflict, "edit conflict on %s", title)
	}
	s.edits[title] = text
	s.summaries[title] = summary
	return nil
}

func updaterFixture(t *testing.T) (*Resolver, *fakeContentSource) {
	r := mustResolver(t, []Page{
		{
			Title: "Guide",
			LangLinks: []LangLink{
				{Tag: "cs", Title: "Guide"},
			},
		},
		{Title: "Guide (Čeština)"}, // recorded links empty, needs [[en:Guide]]
		{Title: "Paĝo (Esperanto)"},
	})
	source := newFakeContentSource()
	source.texts["Guide (Čeština)"] = "Text.\n"
	return r, source
}

func TestUpdateAll(t *testing.T) {
	r, source := updaterFixture(t)

	report, err := NewUpdater(r, source, false).UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll() error: %v", err)
	}

	if !reflect.DeepEqual(report.Updated, []string{"Guide (Čeština)"}) {
		t.Errorf("Updated = %v", report.Updated)
	}
	if got := source.edits["Guide (Čeština)"]; got != "[[en:Guide]]\nText.\n" {
		t.Errorf("edited text = %q", got)
	}
	// the hub's recorded links already match, so it is not touched
	if _, ok := source.edits["Guide"]; ok {
		t.Error("up-to-date page must not be edited")
	}
	// the unsupported language is reported, not edited
	if len(report.Skipped) != 1 || report.Skipped[0].Title != "Paĝo (Esperanto)" {
		t.Errorf("Skipped = %+v", report.Skipped)
	}
	if report.RunID == "" {
		t.Error("report should carry a run id")
	}
}

func TestUpdateAllEditSummary(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		r, source := updaterFixture(t)

		if _, err := NewUpdater(r, source, false).UpdateAll(context.Background()); err != nil {
			t.Fatalf("UpdateAll() error: %v", err)
		}
		if got := source.summaries["Guide (Čeština)"]; got != EditSummary {
			t.Errorf("summary = %q, want %q", got, EditSummary)
		}
	})

	t.Run("override", func(t *testing.T) {
		r, source := updaterFixture(t)

		updater := NewUpdater(r, source, false)
		updater.Summary = "sync translations"
		if _, err := updater.UpdateAll(context.Background()); err != nil {
			t.Fatalf("UpdateAll() error: %v", err)
		}
		if got := source.summaries["Guide (Čeština)"]; got != "sync translations" {
			t.Errorf("summary = %q, want %q", got, "sync translations")
		}
	})
}

func TestUpdateAllDryRun(t *testing.T) {
	r, source := updaterFixture(t)

	report, err := NewUpdater(r, source, true).UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll() error: %v", err)
	}
	if !reflect.DeepEqual(report.Updated, []string{"Guide (Čeština)"}) {
		t.Errorf("Updated = %v", report.Updated)
	}
	if len(source.edits) != 0 {
		t.Error("dry run must not write edits")
	}
}

func TestUpdateAllOptOutPage(t *testing.T) {
	r := mustResolver(t, []Page{
		{
			Title: "Přeskoč (Čeština)",
			LangLinks: []LangLink{
				{Tag: "en", Title: "Ghost"}, // stale recorded link
			},
		},
	})
	source := newFakeContentSource()
	source.texts["Přeskoč (Čeština)"] = "__NOTOC__\nText.\n"

	report, err := NewUpdater(r, source, false).UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll() error: %v", err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Title != "Přeskoč (Čeština)" {
		t.Errorf("Skipped = %+v", report.Skipped)
	}
	if len(source.edits) != 0 {
		t.Error("opted-out page must not be edited")
	}
}

func TestUpdateAllEditConflict(t *testing.T) {
	r, source := updaterFixture(t)
	source.conflict["Guide (Čeština)"] = true

	report, err := NewUpdater(r, source, false).UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll() error: %v", err)
	}
	if len(report.Failed) != 1 || report.Failed[0].Title != "Guide (Čeština)" {
		t.Errorf("Failed = %+v", report.Failed)
	}
	if len(report.Updated) != 0 {
		t.Errorf("Updated = %v, conflicted edit must not count", report.Updated)
	}
}

func TestUpdateAllConfirmDeclined(t *testing.T) {
	r, source := updaterFixture(t)

	var asked []string
	u := NewUpdater(r, source, false)
	u.Confirm = func(title string) (bool, error) {
		asked = append(asked, title)
		return false, nil
	}

	report, err := u.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll() error: %v", err)
	}
	if !reflect.DeepEqual(asked, []string{"Guide (Čeština)"}) {
		t.Errorf("asked = %v", asked)
	}
	if len(source.edits) != 0 {
		t.Error("declined edit must not be written")
	}
	found := false
	for _, skip := range report.Skipped {
		if skip.Title == "Guide (Čeština)" && skip.Reason == "declined" {
			found = true
		}
	}
	if !found {
		t.Errorf("Skipped = %+v, want declined entry", report.Skipped)
	}
}

func TestUpdateAllConfirmStops(t *testing.T) {
	r, source := updaterFixture(t)

	stop := stderrors.New("stop")
	u := NewUpdater(r, source, false)
	u.Confirm = func(title string) (bool, error) { return false, stop }

	_, err := u.UpdateAll(context.Background())
	if !stderrors.Is(err, stop) {
		t.Errorf("UpdateAll() error = %v, want the confirm error", err)
	}
	if len(source.edits) != 0 {
		t.Error("no edit may be written after the confirm error")
	}
}
