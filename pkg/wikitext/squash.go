package wikitext

import (
	"strings"
	"unicode"
)

// RemoveAndSquash deletes n from the tree and repairs the whitespace
// around the hole so that no blank-line run or duplicated inline space
// is left behind.
//
// Only Text neighbors are touched. The rules mirror what a careful
// editor would do by hand:
//   - no preceding node at all: strip the leading whitespace run of the
//     following text
//   - no following node at all: strip the trailing run of the preceding
//     text
//   - both neighbors are text: merge them so exactly one space or one
//     newline remains at the seam, matching whichever separator was
//     originally used (a preceding blank line is preserved)
//
// Non-text neighbors are never modified; stripping next to them would
// change rendered output.
func (t *Tree) RemoveAndSquash(n Node) {
	i := t.Index(n)
	if i < 0 {
		return
	}
	t.RemoveAt(i)

	prevExists := i-1 >= 0
	nextExists := i < len(t.nodes)
	var prev, next *Text
	if prevExists {
		prev, _ = t.nodes[i-1].(*Text)
	}
	if nextExists {
		next, _ = t.nodes[i].(*Text)
	}

	switch {
	case prev == nil && next != nil:
		// strip only at the beginning of the document, not after
		// non-text elements
		if !prevExists {
			next.Value = strings.TrimLeftFunc(next.Value, unicode.IsSpace)
		}
	case prev != nil && next == nil:
		// strip only at the end of the document, not before non-text
		// elements
		if !nextExists {
			prev.Value = strings.TrimRightFunc(prev.Value, unicode.IsSpace)
		}
	case prev != nil && next != nil:
		squashSeam(prev, next)
		// merge successive text nodes
		prev.Value += next.Value
		t.RemoveAt(i)
	}
}

func squashSeam(prev, next *Text) {
	switch {
	case strings.HasSuffix(prev.Value, " ") && strings.HasPrefix(next.Value, " "):
		prev.Value = strings.TrimRight(prev.Value, " ")
		next.Value = " " + strings.TrimLeft(next.Value, " ")
	case strings.HasSuffix(prev.Value, "\n") && strings.HasPrefix(next.Value, "\n"):
		if strings.HasSuffix(strings.TrimSuffix(prev.Value, "\n"), "\n") ||
			strings.HasPrefix(strings.TrimPrefix(next.Value, "\n"), "\n") {
			// preserve preceding blank line
			prev.Value = strings.TrimRight(prev.Value, "\n") + "\n\n"
		} else {
			// leave one linebreak
			prev.Value = strings.TrimRight(prev.Value, "\n") + "\n"
		}
		next.Value = strings.TrimLeft(next.Value, "\n")
	case strings.HasSuffix(prev.Value, "\n"):
		next.Value = strings.TrimLeftFunc(next.Value, unicode.IsSpace)
	case strings.HasPrefix(next.Value, "\n"):
		prev.Value = strings.TrimRightFunc(prev.Value, unicode.IsSpace)
	}
}
