package toc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jkral/interwiki/pkg/catgraph"
)

// Plain renders the tree as indented plain text, one category per
// line with its page count and hierarchical numbering.
type Plain struct {
	base
	sb strings.Builder
}

// NewPlain builds a plain-text formatter over the given adjacency and
// counters.
func NewPlain(parents map[string][]string, info map[string]catgraph.Info, names Names, alsoin AlsoIn) *Plain {
	return &Plain{base: base{parents: parents, info: info, names: names, alsoin: alsoin}}
}

func (f *Plain) FormatRoot(titles ...string) {
	for _, t := range titles {
		fmt.Fprintf(&f.sb, "%s (%d)\n", t, f.info[t].Pages)
	}
	if len(titles) > 1 {
		f.sb.WriteString("----\n")
	}
}

func (f *Plain) FormatRow(cells ...*catgraph.Item) {
	for _, cell := range cells {
		if cell == nil {
			f.sb.WriteString("\n")
			continue
		}
		f.sb.WriteString(f.cell(cell))
		f.sb.WriteString("\n")
	}
	if len(cells) > 1 {
		f.sb.WriteString("----\n")
	}
}

func (f *Plain) cell(item *catgraph.Item) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", 4*item.Depth()))
	sb.WriteString(levelString(item.Levels))
	fmt.Fprintf(&sb, " %s (%d)", f.localize(item.Title), f.info[item.Title].Pages)
	if extra := f.extraParents(item.Title, item.Parent, f.localize); len(extra) > 0 {
		fmt.Fprintf(&sb, " (%s %s)", f.alsoin.phrase(tagOf(item.Title)), strings.Join(extra, ", "))
	}
	return sb.String()
}

func (f *Plain) String() string { return f.sb.String() }

// levelString joins one-based level indices with dots, e.g. "2.1.3".
func levelString(levels []int) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(l + 1)
	}
	return strings.Join(parts, ".")
}
