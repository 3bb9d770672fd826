package toc

import (
	"strings"
	"testing"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/errors"
)

// treeFixture is a small bilingual category forest:
//
//	Category:English            Category:Čeština
//	├── Networking              └── Networking (Čeština)
//	│   └── Wireless
//	└── Sound
//
// Wireless additionally sits under Sound, giving it an extra parent.
func treeFixture() (subcats, parents map[string][]string, info map[string]catgraph.Info) {
	subcats = map[string][]string{
		"Category:English":    {"Category:Networking", "Category:Sound"},
		"Category:Networking": {"Category:Wireless"},
		"Category:Čeština":    {"Category:Networking (Čeština)"},
	}
	parents = map[string][]string{
		"Category:Networking":           {"Category:English"},
		"Category:Sound":                {"Category:English"},
		"Category:Wireless":             {"Category:Networking", "Category:Sound"},
		"Category:Networking (Čeština)": {"Category:Čeština"},
	}
	info = map[string]catgraph.Info{
		"Category:English":              {Pages: 100},
		"Category:Networking":           {Pages: 20},
		"Category:Wireless":             {Pages: 7},
		"Category:Sound":                {Pages: 11},
		"Category:Čeština":              {Pages: 4},
		"Category:Networking (Čeština)": {Pages: 3},
	}
	return subcats, parents, info
}

func TestPlainSingleTree(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewPlain(parents, info, Names{}, AlsoIn{})

	if err := Render(f, subcats, "Category:English"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := "Category:English (100)\n" +
		"    1 Networking (20)\n" +
		"        1.1 Wireless (7) (also in Sound)\n" +
		"    2 Sound (11)\n"
	if got := f.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlainLocalizedNames(t *testing.T) {
	subcats, parents, info := treeFixture()
	names := Names{}
	names.Set("Category:Networking (Čeština)", "Sítě")

	f := NewPlain(parents, info, names, AlsoIn{})
	if err := Render(f, subcats, "Category:Čeština"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(f.String(), "    1 Sítě (3)\n") {
		t.Errorf("localized name missing:\n%s", f.String())
	}
}

func TestPlainComparison(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewPlain(parents, info, Names{}, AlsoIn{})

	if err := Render(f, subcats, "Category:English", "Category:Čeština"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	got := f.String()

	// both roots, then a separator
	if !strings.HasPrefix(got, "Category:English (100)\nCategory:Čeština (4)\n----\n") {
		t.Errorf("roots malformed:\n%s", got)
	}
	// the matched Networking pair shares a row block; unmatched cells
	// are blank lines
	if !strings.Contains(got, "    1 Networking (20)\n    1 Networking (3)\n----\n") {
		t.Errorf("matched pair malformed:\n%s", got)
	}
	if !strings.Contains(got, "        1.1 Wireless (7) (also in Sound)\n\n----\n") {
		t.Errorf("unmatched left cell malformed:\n%s", got)
	}
}

func TestRenderRejectsTooManyRoots(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewPlain(parents, info, Names{}, AlsoIn{})

	err := Render(f, subcats, "a", "b", "c")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestMediaWikiSingleTree(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewMediaWiki(parents, info, Names{}, AlsoIn{}, true)

	if err := Render(f, subcats, "Category:Čeština"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := "{|\n" +
		"| [[:Category:Čeština|Čeština]] <small>(4)</small>\n" +
		"|-\n" +
		"| <span style=\"margin-left:1.6em;\"><small>1.</small> [[:Category:Networking (Čeština)|Networking]] <small>(3)</small></span>\n" +
		"|-\n" +
		"|}"
	if got := f.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMediaWikiNoTableTokens(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewMediaWiki(parents, info, Names{}, AlsoIn{}, false)

	if err := Render(f, subcats, "Category:Čeština"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	got := f.String()
	if strings.HasPrefix(got, "{|") || strings.HasSuffix(got, "|}") {
		t.Errorf("table tokens should be omitted:\n%s", got)
	}
}

func TestMediaWikiExtraParents(t *testing.T) {
	subcats, parents, info := treeFixture()
	f := NewMediaWiki(parents, info, Names{}, AlsoIn{"en": "also in"}, false)

	if err := Render(f, subcats, "Category:English"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(f.String(), "(also in [[:Category:Sound|Sound]])") {
		t.Errorf("extra parent link missing:\n%s", f.String())
	}
}

func TestMediaWikiRTLDirectionMark(t *testing.T) {
	subcats := map[string][]string{
		"Category:العربية": {"Category:Networking (العربية)"},
	}
	parents := map[string][]string{
		"Category:Networking (العربية)": {"Category:العربية"},
	}
	f := NewMediaWiki(parents, map[string]catgraph.Info{}, Names{}, AlsoIn{}, false)

	if err := Render(f, subcats, "Category:العربية"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(f.String(), "&lrm;") {
		t.Errorf("right-to-left title should carry a direction mark:\n%s", f.String())
	}
}

func TestMediaWikiMarginPrecision(t *testing.T) {
	// depth 2 gives margin 3.2, depth 3 gives 4.800000000000001 which
	// must render trimmed
	subcats := map[string][]string{
		"R": {"A"}, "A": {"B"}, "B": {"C"}, "C": {"D"},
	}
	f := NewMediaWiki(map[string][]string{}, map[string]catgraph.Info{}, Names{}, AlsoIn{}, false)
	if err := Render(f, subcats, "R"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	got := f.String()
	if !strings.Contains(got, "margin-left:3.2em") {
		t.Errorf("missing depth-2 margin:\n%s", got)
	}
	if !strings.Contains(got, "margin-left:4.8em") {
		t.Errorf("depth-3 margin should be trimmed to three digits:\n%s", got)
	}
}

func TestAlsoInPhrase(t *testing.T) {
	a := AlsoIn{"cs": "také v", "en": "also in"}
	if got := a.phrase("cs"); got != "také v" {
		t.Errorf("phrase(cs) = %q", got)
	}
	if got := a.phrase("it"); got != "also in" {
		t.Errorf("phrase(it) should fall back to English, got %q", got)
	}
	if got := (AlsoIn{}).phrase("cs"); got != "also in" {
		t.Errorf("empty map should fall back to the literal, got %q", got)
	}
}

func TestParseAlsoIn(t *testing.T) {
	a := ParseAlsoIn("Category:Čeština", "en: also in, cs: také v")
	if a["en"] != "also in" || a["cs"] != "také v" {
		t.Errorf("parsed = %v", a)
	}

	// an item without a tag prefix belongs to the title's own language
	a = ParseAlsoIn("Category:Čeština", "také v")
	if a["cs"] != "také v" {
		t.Errorf("untagged item = %v, want cs entry", a)
	}
}
