package toc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/lang"
)

// MediaWiki renders the tree as rows of a MediaWiki table. Indentation
// is expressed through a left margin so that the output survives the
// wiki's whitespace handling.
type MediaWiki struct {
	base
	wrapTable bool
	sb        strings.Builder
}

// NewMediaWiki builds a wikitext formatter. With wrapTable set the
// output is enclosed in {| ... |} tokens; leave it unset when the
// rendered rows are spliced into an existing table.
func NewMediaWiki(parents map[string][]string, info map[string]catgraph.Info, names Names, alsoin AlsoIn, wrapTable bool) *MediaWiki {
	return &MediaWiki{
		base:      base{parents: parents, info: info, names: names, alsoin: alsoin},
		wrapTable: wrapTable,
	}
}

// catlink renders a visible link to a category under its localized
// name. Right-to-left titles get a direction mark so that the
// following counters render correctly.
func (f *MediaWiki) catlink(title string) string {
	link := fmt.Sprintf("[[:%s|%s]]", title, f.localize(title))
	if _, language := lang.DetectLanguage(title); language.RTL {
		link += "&lrm;"
	}
	return link
}

func (f *MediaWiki) FormatRoot(titles ...string) {
	for _, t := range titles {
		fmt.Fprintf(&f.sb, "| %s <small>(%d)</small>\n", f.catlink(t), f.info[t].Pages)
	}
	f.sb.WriteString("|-\n")
}

func (f *MediaWiki) FormatRow(cells ...*catgraph.Item) {
	for _, cell := range cells {
		if cell == nil {
			f.sb.WriteString("|\n")
			continue
		}
		f.sb.WriteString("| ")
		f.sb.WriteString(f.cell(cell))
		f.sb.WriteString("\n")
	}
	f.sb.WriteString("|-\n")
}

func (f *MediaWiki) cell(item *catgraph.Item) string {
	margin := strconv.FormatFloat(1.6*float64(item.Depth()), 'g', 3, 64)
	info := fmt.Sprintf("(%d)", f.info[item.Title].Pages)
	if extra := f.extraParents(item.Title, item.Parent, f.catlink); len(extra) > 0 {
		info += fmt.Sprintf(" (%s %s)", f.alsoin.phrase(tagOf(item.Title)), strings.Join(extra, ", "))
	}
	return fmt.Sprintf("<span style=\"margin-left:%sem;\"><small>%s.</small> %s <small>%s</small></span>",
		margin, levelString(item.Levels), f.catlink(item.Title), info)
}

func (f *MediaWiki) String() string {
	if !f.wrapTable {
		return f.sb.String()
	}
	out := "{|\n" + f.sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + "|}"
}
