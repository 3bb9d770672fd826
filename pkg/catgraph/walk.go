package catgraph

import (
	"iter"
	"sort"
	"strings"

	"github.com/jkral/interwiki/pkg/lang"
)

// Item is one step of a depth-first traversal: the visited category,
// the parent it was reached through, and the sibling indices along the
// path from the root (used for "1.2.3." style numbering).
type Item struct {
	Title  string
	Parent string
	Levels []int
}

// Depth returns the nesting depth of the item below the root.
func (it Item) Depth() int { return len(it.Levels) }

// Walk traverses adjacency depth-first from root, visiting siblings in
// case-insensitive alphabetical order. The sequence is lazy, finite and
// restartable. A node already on the current path is not descended into
// again, so traversal terminates even when the graph contains cycles; a
// node reachable via two different paths is visited once per path.
//
// The Levels slice of each yielded item is a copy owned by the
// consumer.
func Walk(adjacency map[string][]string, root string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		visited := map[string]bool{}
		walk(adjacency, root, nil, visited, yield)
	}
}

func walk(adjacency map[string][]string, node string, levels []int, visited map[string]bool, yield func(Item) bool) bool {
	children := append([]string(nil), adjacency[node]...)
	sort.SliceStable(children, func(i, j int) bool {
		return strings.ToLower(children[i]) < strings.ToLower(children[j])
	})
	for i, child := range children {
		if visited[child] {
			continue
		}
		visited[child] = true
		path := append(append([]int(nil), levels...), i)
		if !yield(Item{Title: child, Parent: node, Levels: path}) {
			return false
		}
		if !walk(adjacency, child, path, visited, yield) {
			return false
		}
		delete(visited, child)
	}
	return true
}

// Pair is one aligned row of a two-tree comparison. Exactly one side
// may be nil, when a node has no counterpart in the other tree.
type Pair struct {
	Left  *Item
	Right *Item
}

// CompareComponents merge-joins the Walk sequences of two roots into a
// sequence of aligned pairs, ordered depth-first with equal-depth items
// compared by the language-agnostic base form of their title. A pair
// carries both items when the comparison keys match, otherwise the item
// from one tree is paired with nil on the other side. Every node
// yielded by either walk appears in exactly one pair.
//
// The base-title key makes translated category names align with their
// counterparts, which is what drives the side-by-side bilingual view of
// a category subtree.
func CompareComponents(adjacency map[string][]string, left, right string) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		nextLeft, stopLeft := iter.Pull(Walk(adjacency, left))
		defer stopLeft()
		nextRight, stopRight := iter.Pull(Walk(adjacency, right))
		defer stopRight()

		lv, lok := nextLeft()
		rv, rok := nextRight()
		for lok || rok {
			switch c := comparePairKeys(lv, lok, rv, rok); {
			case c < 0:
				item := lv
				if !yield(Pair{Left: &item}) {
					return
				}
				lv, lok = nextLeft()
			case c > 0:
				item := rv
				if !yield(Pair{Right: &item}) {
					return
				}
				rv, rok = nextRight()
			default:
				l, r := lv, rv
				if !yield(Pair{Left: &l, Right: &r}) {
					return
				}
				lv, lok = nextLeft()
				rv, rok = nextRight()
			}
		}
	}
}

// comparePairKeys orders items by (-depth, base title); an exhausted
// side sorts after everything so the remaining items of the other side
// drain as unmatched pairs.
func comparePairKeys(l Item, lok bool, r Item, rok bool) int {
	switch {
	case !lok && !rok:
		return 0
	case !lok:
		return 1
	case !rok:
		return -1
	}
	if d := r.Depth() - l.Depth(); d != 0 {
		// deeper items first
		return d
	}
	lbase, _ := lang.DetectLanguage(l.Title)
	rbase, _ := lang.DetectLanguage(r.Title)
	return strings.Compare(lbase, rbase)
}
