// Package catgraph builds and traverses the category containment graph
// of the wiki.
//
// The graph is rebuilt wholesale from a full category listing on every
// Update call; it is never mutated incrementally. Category membership
// on a wiki is editor-controlled and may contain cycles, so all
// traversals guard against revisiting a node already on the current
// path instead of assuming a DAG.
//
// Walk and CompareComponents are pure iterators: they can be partially
// consumed, interleaved or abandoned without side effects, and
// re-invoking them restarts the traversal from the root.
package catgraph

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
)

// Info is the snapshot counter set of one category.
type Info struct {
	Pages   int // member pages
	Subcats int // member subcategories
	Files   int // member files
}

// Record is one category from the full listing: its title, its direct
// parent categories and its counters.
type Record struct {
	Title   string
	Parents []string
	Info    Info
}

// Source supplies the category listings and executes category creation.
// It is implemented by the wiki API client; the graph itself performs
// no network I/O beyond what Source does on its behalf.
type Source interface {
	// ListCategories returns the full category listing with direct
	// memberships and counters.
	ListCategories(ctx context.Context) ([]Record, error)
	// ListWantedCategories returns titles of categories that are
	// referenced by pages but do not exist yet.
	ListWantedCategories(ctx context.Context) ([]string, error)
	// CreateCategory creates a category page with the given content.
	CreateCategory(ctx context.Context, title, content, summary string) error
}

// Graph holds the category containment graph. Not safe for concurrent
// use; the design assumes a single-threaded driver.
type Graph struct {
	source Source
	logger *log.Logger

	parents map[string][]string // category -> direct parent categories
	subcats map[string][]string // category -> direct subcategories
	info    map[string]Info
}

// New creates an empty graph over the given source. Call Update to
// populate it. A nil logger falls back to the default logger.
func New(source Source, logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.Default()
	}
	return &Graph{
		source:  source,
		logger:  logger,
		parents: make(map[string][]string),
		subcats: make(map[string][]string),
		info:    make(map[string]Info),
	}
}

// Update rebuilds the graph from a fresh full listing. The previous
// contents are discarded entirely; calling Update repeatedly is
// idempotent for an unchanged listing.
func (g *Graph) Update(ctx context.Context) error {
	records, err := g.source.ListCategories(ctx)
	if err != nil {
		return err
	}

	g.parents = make(map[string][]string)
	g.subcats = make(map[string][]string)
	g.info = make(map[string]Info)

	for _, rec := range records {
		if len(rec.Parents) > 0 {
			g.parents[rec.Title] = append(g.parents[rec.Title], rec.Parents...)
			for _, p := range rec.Parents {
				g.subcats[p] = append(g.subcats[p], rec.Title)
			}
		}
		// referenced but empty categories still become graph nodes
		// with zero counters
		if _, ok := g.info[rec.Title]; !ok {
			g.info[rec.Title] = Info{}
		}
		if rec.Info != (Info{}) {
			g.info[rec.Title] = rec.Info
		}
	}
	return nil
}

// Parents returns the parent adjacency of the graph.
func (g *Graph) Parents() map[string][]string { return g.parents }

// Subcats returns the child adjacency of the graph.
func (g *Graph) Subcats() map[string][]string { return g.subcats }

// Info returns the counter snapshot for a category. Unknown categories
// report zero counters.
func (g *Graph) Info(title string) Info { return g.info[title] }

// Infos returns the counter snapshots of all known categories.
func (g *Graph) Infos() map[string]Info { return g.info }

// Contains reports whether the category appeared in the last listing.
func (g *Graph) Contains(title string) bool {
	_, ok := g.info[title]
	return ok
}

// Titles returns all category titles known to the graph, sorted.
func (g *Graph) Titles() []string {
	out := make([]string, 0, len(g.info))
	for t := range g.info {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
