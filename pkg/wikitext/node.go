// Package wikitext provides a manipulable node tree for wiki markup.
//
// The parser is deliberately tolerant: it recognizes only the node shapes
// the header tooling needs (templates, wiki links, HTML-like tags and
// comments) and degrades everything else to plain text. Unbalanced or
// otherwise unparsable constructs never fail the parse; they stay in the
// output as text. The tree round-trips: String() of a freshly parsed
// tree reproduces the input byte for byte.
//
// Trees are mutable. Nodes are identified by pointer, so a node obtained
// from a tree can be removed from or repositioned within that tree.
// Nested trees (tag bodies) are themselves Trees, which makes the
// "container" of any node explicit.
package wikitext

import "strings"

// Node is one element of a parsed markup tree.
type Node interface {
	// String returns the node's markup form.
	String() string
	node()
}

// Text is a run of plain markup text between recognized nodes.
type Text struct {
	Value string
}

func (t *Text) String() string { return t.Value }
func (*Text) node()            {}

// Template is a transclusion or parser-function call, {{Name|params}}.
// Name and Params hold the inner text exactly as written, so the String
// form reproduces the original markup.
type Template struct {
	Name   string // text between "{{" and the first "|" (or "}}")
	Params string // remainder including the leading "|", or empty
}

func (t *Template) String() string { return "{{" + t.Name + t.Params + "}}" }
func (*Template) node()            {}

// Link is an internal wiki link, [[Target]] or [[Target|Label]].
// Target and Label hold the inner text exactly as written.
type Link struct {
	Target string
	Label  string // display label including nothing of the "|", empty if absent
	Piped  bool   // whether a "|" was present (distinguishes [[a|]] from [[a]])
}

func (l *Link) String() string {
	if l.Piped {
		return "[[" + l.Target + "|" + l.Label + "]]"
	}
	return "[[" + l.Target + "]]"
}
func (*Link) node() {}

// TargetPrefix returns the part of the link target before the first
// colon, with surrounding whitespace stripped. Returns "" when the
// target has no colon.
func (l *Link) TargetPrefix() string {
	target := l.Target
	i := strings.Index(target, ":")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(target[:i])
}

// Comment is an HTML comment, <!-- ... -->.
type Comment struct {
	Inner string
}

func (c *Comment) String() string { return "<!--" + c.Inner + "-->" }
func (*Comment) node()            {}

// Tag is an HTML-like element with a parsed body, e.g. <noinclude>...</noinclude>.
// The body is a nested Tree so that nodes inside the tag have an explicit
// container. Self-closing and void tags have a nil Body and empty Closing.
type Tag struct {
	Name    string // tag name, lowercase
	Opening string // raw opening tag including angle brackets
	Closing string // raw closing tag, empty for self-closing
	Body    *Tree  // nil for self-closing tags
}

func (t *Tag) String() string {
	var sb strings.Builder
	sb.WriteString(t.Opening)
	if t.Body != nil {
		sb.WriteString(t.Body.String())
	}
	sb.WriteString(t.Closing)
	return sb.String()
}
func (*Tag) node() {}

// Tree is an ordered sequence of nodes. The zero value is an empty tree.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree from the given nodes.
func NewTree(nodes ...Node) *Tree {
	return &Tree{nodes: nodes}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// At returns the node at index i.
func (t *Tree) At(i int) Node { return t.nodes[i] }

// Nodes returns the tree's node slice. The slice must not be modified
// directly; use the tree's mutation methods.
func (t *Tree) Nodes() []Node { return t.nodes }

// Index returns the position of n in the tree, comparing by identity.
// Returns -1 when n is not a direct child of the tree.
func (t *Tree) Index(n Node) int {
	for i, c := range t.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Insert places n at position i, shifting later nodes right.
func (t *Tree) Insert(i int, n Node) {
	t.nodes = append(t.nodes, nil)
	copy(t.nodes[i+1:], t.nodes[i:])
	t.nodes[i] = n
}

// Append adds n at the end of the tree.
func (t *Tree) Append(n Node) {
	t.nodes = append(t.nodes, n)
}

// RemoveAt deletes the node at position i.
func (t *Tree) RemoveAt(i int) {
	t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
}

// String returns the markup form of the whole tree.
func (t *Tree) String() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		sb.WriteString(n.String())
	}
	return sb.String()
}
