package wikitext

import (
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	// Parsing followed by String() must reproduce the input exactly.
	inputs := []string{
		"",
		"plain text only\n",
		"__NOTOC__\n[[Category:Foo]]\n[[cs:Page (Čeština)]]\nBody.\n",
		"{{Related articles start}}\n{{Related|Other page}}\n{{Related articles end}}\n",
		"{{Template|param1|param2=x}}",
		"[[link]] and [[link|label]] and [[link|]]",
		"<!-- a comment -->text<!-- unterminated",
		"<noinclude>[[Category:Hidden]]</noinclude>",
		"unbalanced {{template and [[link",
		"{{outer|{{inner}}}}",
		"[[File:Image.png|thumb|Caption with [[nested link]]]]",
		"<br> loose angle <tag unclosed",
		"<ref name=\"x\">cite</ref> after",
	}
	for _, in := range inputs {
		if got := Parse(in).String(); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestParseTemplate(t *testing.T) {
	tree := Parse("{{Lowercase title}}")
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	tpl, ok := tree.At(0).(*Template)
	if !ok {
		t.Fatalf("node type = %T, want *Template", tree.At(0))
	}
	if tpl.Name != "Lowercase title" || tpl.Params != "" {
		t.Errorf("template = %+v", tpl)
	}
}

func TestParseTemplateParams(t *testing.T) {
	tree := Parse("{{Related|Some page|label}}")
	tpl := tree.At(0).(*Template)
	if tpl.Name != "Related" {
		t.Errorf("Name = %q", tpl.Name)
	}
	if tpl.Params != "|Some page|label" {
		t.Errorf("Params = %q", tpl.Params)
	}
}

func TestParseNestedTemplate(t *testing.T) {
	tree := Parse("{{outer|{{inner}}}}")
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1; nesting must not split the template", tree.Len())
	}
	tpl := tree.At(0).(*Template)
	if tpl.Name != "outer" {
		t.Errorf("Name = %q", tpl.Name)
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		in     string
		target string
		label  string
		piped  bool
	}{
		{"[[Installation guide]]", "Installation guide", "", false},
		{"[[Category:Foo|sort key]]", "Category:Foo", "sort key", true},
		{"[[cs:Page (Čeština)]]", "cs:Page (Čeština)", "", false},
		{"[[a|]]", "a", "", true},
	}
	for _, tt := range tests {
		tree := Parse(tt.in)
		link, ok := tree.At(0).(*Link)
		if !ok {
			t.Errorf("Parse(%q) node type = %T", tt.in, tree.At(0))
			continue
		}
		if link.Target != tt.target || link.Label != tt.label || link.Piped != tt.piped {
			t.Errorf("Parse(%q) = %+v", tt.in, link)
		}
	}
}

func TestLinkTargetPrefix(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"Category:Foo", "Category"},
		{" category :Foo", "category"},
		{"cs:Page", "cs"},
		{"No colon", ""},
	}
	for _, tt := range tests {
		l := &Link{Target: tt.target}
		if got := l.TargetPrefix(); got != tt.want {
			t.Errorf("TargetPrefix(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestParseTagBody(t *testing.T) {
	tree := Parse("<noinclude>[[Category:Foo]]</noinclude>")
	tag, ok := tree.At(0).(*Tag)
	if !ok {
		t.Fatalf("node type = %T, want *Tag", tree.At(0))
	}
	if tag.Name != "noinclude" {
		t.Errorf("Name = %q", tag.Name)
	}
	if tag.Body == nil || tag.Body.Len() != 1 {
		t.Fatal("tag body should contain the nested link")
	}
	if _, ok := tag.Body.At(0).(*Link); !ok {
		t.Errorf("body node type = %T, want *Link", tag.Body.At(0))
	}
}

func TestParseSelfClosingTag(t *testing.T) {
	tree := Parse("<references/>")
	tag, ok := tree.At(0).(*Tag)
	if !ok {
		t.Fatalf("node type = %T, want *Tag", tree.At(0))
	}
	if tag.Body != nil || tag.Closing != "" {
		t.Errorf("self-closing tag should have nil body, got %+v", tag)
	}
}

func TestParseVoidTagStaysText(t *testing.T) {
	tree := Parse("line one<br>line two")
	for _, n := range tree.Nodes() {
		if _, ok := n.(*Tag); ok {
			t.Error("<br> without closing tag should stay plain text")
		}
	}
}

func TestTreeMutation(t *testing.T) {
	tree := Parse("a[[x]]b")
	link := tree.At(1)

	if got := tree.Index(link); got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}

	tree.RemoveAt(1)
	if tree.String() != "ab" {
		t.Errorf("after RemoveAt: %q", tree.String())
	}

	tree.Insert(1, link)
	if tree.String() != "a[[x]]b" {
		t.Errorf("after Insert: %q", tree.String())
	}

	tree.Append(&Text{Value: "!"})
	if tree.String() != "a[[x]]b!" {
		t.Errorf("after Append: %q", tree.String())
	}
}
