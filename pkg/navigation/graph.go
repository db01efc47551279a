package navigation

import (
	"slices"

	"github.com/tidwall/btree"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// rootNode is the node id always assigned to the root section.
const rootNode int64 = 1

// DefaultBrand is appended as the last element of every title path.
const DefaultBrand = "egoroff.spb.ru"

// Options configures graph construction.
type Options struct {
	// Brand is the site name closing every title path.
	Brand string
}

// DefaultOptions returns the options used by Build.
func DefaultOptions() Options {
	return Options{
		Brand: DefaultBrand,
	}
}

// Graph is an immutable index over a site section tree.
//
// Sections live in an append-only arena addressed by dense node ids
// (1 is the root, children follow in pre-order). Parent/child relations are
// stored as integer edges in a gonum directed graph, never as live references
// into the caller's tree, so a Graph stays valid whatever the caller does with
// the tree it was built from.
type Graph struct {
	// arena[id-1] is the section with node id id.
	arena  []*SiteSection
	edges  *simple.DirectedGraph
	search map[string]int64
	// ordered mirrors search sorted by string id for prefix scans.
	ordered *btree.Map[string, int64]
	brand   string
}

// Build creates a graph from root using DefaultOptions.
func Build(root *SiteSection) *Graph {
	return BuildWithOptions(root, DefaultOptions())
}

// BuildWithOptions walks root once in pre-order and returns the resulting graph.
// A nil root yields an empty graph on which every query reports absence.
func BuildWithOptions(root *SiteSection, opts Options) *Graph {
	g := &Graph{
		edges:   simple.NewDirectedGraph(),
		search:  make(map[string]int64),
		ordered: btree.NewMap[string, int64](0),
		brand:   opts.Brand,
	}
	if root == nil {
		return g
	}

	rootCopy := g.newNode(root)
	g.newEdges(root, rootCopy, rootNode)
	return g
}

// newNode copies s into the arena and registers it under the next node id.
// The copy starts without children; newEdges fills them in.
func (g *Graph) newNode(s *SiteSection) *SiteSection {
	id := int64(len(g.arena)) + 1
	c := &SiteSection{
		ID:       s.ID,
		Icon:     s.Icon,
		Title:    s.Title,
		Descr:    s.Descr,
		Keywords: s.Keywords,
		Active:   s.Active,
	}
	g.arena = append(g.arena, c)
	g.edges.AddNode(simple.Node(id))
	g.search[s.ID] = id
	g.ordered.Set(s.ID, id)
	return c
}

func (g *Graph) newEdges(src, dst *SiteSection, parent int64) {
	if src.IsLeaf() {
		return
	}
	dst.Children = make([]*SiteSection, 0, len(src.Children))
	for _, child := range src.Children {
		if child == nil {
			continue
		}
		cc := g.newNode(child)
		id := int64(len(g.arena))
		g.edges.SetEdge(g.edges.NewEdge(simple.Node(parent), simple.Node(id)))
		dst.Children = append(dst.Children, cc)
		g.newEdges(child, cc, id)
	}
}

// Len returns the number of sections in the graph.
func (g *Graph) Len() int {
	return len(g.arena)
}

// Brand returns the site name used by TitlePath.
func (g *Graph) Brand() string {
	return g.brand
}

// Root returns the root section, or nil for an empty graph.
func (g *Graph) Root() *SiteSection {
	return g.node(rootNode)
}

func (g *Graph) node(id int64) *SiteSection {
	if id < 1 || id > int64(len(g.arena)) {
		return nil
	}
	return g.arena[id-1]
}

// parent returns the node id of the single incoming edge, or 0 for the root.
func (g *Graph) parent(id int64) int64 {
	it := g.edges.To(id)
	if it.Next() {
		return it.Node().ID()
	}
	return 0
}

// Sections calls fn for every section in pre-order until fn returns false.
func (g *Graph) Sections(fn func(s *SiteSection) bool) {
	for _, s := range g.arena {
		if !fn(s) {
			return
		}
	}
}

// SectionsWithPrefix returns the sections whose id starts with prefix,
// ordered by id.
func (g *Graph) SectionsWithPrefix(prefix string) []*SiteSection {
	var out []*SiteSection
	g.ordered.Ascend(prefix, func(key string, id int64) bool {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			return false
		}
		out = append(out, g.node(id))
		return true
	})
	return out
}

// Descendants returns every section below the one named id, in pre-order.
// It returns nil for unknown ids and for leaves.
func (g *Graph) Descendants(id string) []*SiteSection {
	start, ok := g.search[id]
	if !ok {
		return nil
	}

	var found []int64
	dfs := traverse.DepthFirst{
		Visit: func(n graph.Node) {
			if n.ID() != start {
				found = append(found, n.ID())
			}
		},
	}
	dfs.Walk(g.edges, simple.Node(start), nil)

	// Node ids were assigned in pre-order, so sorting restores it.
	slices.Sort(found)
	out := make([]*SiteSection, 0, len(found))
	for _, n := range found {
		out = append(out, g.node(n))
	}
	return out
}
