package wikitext

import (
	"testing"
)

func TestRemoveAndSquash(t *testing.T) {
	tests := []struct {
		name string
		in   string
		pick func(*Tree) Node
		want string
	}{
		{
			name: "leading node strips following whitespace",
			in:   "[[Category:Foo]]\nBody text.\n",
			pick: firstLink,
			want: "Body text.\n",
		},
		{
			name: "trailing node strips preceding whitespace",
			in:   "Body text.\n[[cs:Other]]",
			pick: firstLink,
			want: "Body text.",
		},
		{
			name: "single newline seam keeps one newline",
			in:   "First line.\n[[Category:Foo]]\nSecond line.\n",
			pick: firstLink,
			want: "First line.\nSecond line.\n",
		},
		{
			name: "blank line before is preserved",
			in:   "Intro.\n\n[[Category:Foo]]\nMore.\n",
			pick: firstLink,
			want: "Intro.\n\nMore.\n",
		},
		{
			name: "inline spaces collapse to one",
			in:   "before [[x]] after",
			pick: firstLink,
			want: "before after",
		},
		{
			name: "node not in tree is ignored",
			in:   "text",
			pick: func(*Tree) Node { return &Link{Target: "elsewhere"} },
			want: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Parse(tt.in)
			tree.RemoveAndSquash(tt.pick(tree))
			if got := tree.String(); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func firstLink(t *Tree) Node {
	for _, n := range t.Nodes() {
		if _, ok := n.(*Link); ok {
			return n
		}
	}
	return nil
}

func TestRemoveAndSquashMergesTextNeighbors(t *testing.T) {
	tree := Parse("a\n[[x]]\nb")
	tree.RemoveAndSquash(firstLink(tree))

	// the text neighbors must have merged into a single node
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1 merged text node", tree.Len())
	}
	if tree.String() != "a\nb" {
		t.Errorf("result = %q", tree.String())
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"installation guide", "Installation guide"},
		{"Installation_guide", "Installation guide"},
		{"  spaced   out  ", "Spaced out"},
		{"čeština", "Čeština"},
		{"", ""},
		{"Already fine", "Already fine"},
	}
	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitlesEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Category:Foo", "category:foo", true},
		{"Installation_guide", "Installation guide", true},
		{"Foo", "Bar", false},
		{"Foo  bar", "Foo bar", true},
	}
	for _, tt := range tests {
		if got := TitlesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("TitlesEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
