package catgraph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/jkral/interwiki/pkg/lang"
)

// DOTOptions configures DOT export of the category graph.
type DOTOptions struct {
	// Root limits the export to the component reachable from this
	// category. Empty exports the whole graph.
	Root string
	// Counters includes the page counters in node labels.
	Counters bool
}

// ToDOT converts the category graph to Graphviz DOT format. Localized
// categories are shaded to make language subtrees stand out. The
// resulting string can be rendered with [RenderSVG].
func (g *Graph) ToDOT(opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph categories {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	titles := g.Titles()
	if opts.Root != "" {
		seen := map[string]bool{opts.Root: true}
		for item := range Walk(g.subcats, opts.Root) {
			seen[item.Title] = true
		}
		filtered := titles[:0]
		for _, t := range titles {
			if seen[t] {
				filtered = append(filtered, t)
			}
		}
		titles = filtered
	}

	inScope := make(map[string]bool, len(titles))
	for _, t := range titles {
		inScope[t] = true
	}

	for _, t := range titles {
		label := t
		if opts.Counters {
			label = fmt.Sprintf("%s\\n%d pages", t, g.Info(t).Pages)
		}
		attrs := fmt.Sprintf("label=%q", label)
		if _, language := lang.DetectLanguage(t); !language.IsDefault() {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", t, attrs)
	}

	buf.WriteString("\n")
	for _, parent := range titles {
		for _, child := range g.subcats[parent] {
			if inScope[child] {
				fmt.Fprintf(&buf, "  %q -> %q;\n", parent, child)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
