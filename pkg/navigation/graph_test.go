package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTree returns root -> {a -> {aa}, b -> {bb}}.
func newTestTree() *SiteSection {
	return &SiteSection{
		ID:    Sep,
		Title: "Home",
		Children: []*SiteSection{
			{
				ID:    "a",
				Title: "a",
				Children: []*SiteSection{
					{ID: "aa", Title: "aa"},
				},
			},
			{
				ID:    "b",
				Title: "b",
				Children: []*SiteSection{
					{ID: "bb", Title: "bb"},
				},
			},
		},
	}
}

func newTestGraph() *Graph {
	return Build(newTestTree())
}

func TestBuild_PreOrderIDs(t *testing.T) {
	g := newTestGraph()

	require.Equal(t, 5, g.Len())

	expected := map[string]int64{"/": 1, "a": 2, "aa": 3, "b": 4, "bb": 5}
	for id, node := range expected {
		assert.Equal(t, node, g.search[id], "node id of %q", id)
		assert.Equal(t, id, g.node(node).ID)
	}
}

func TestBuild_Edges(t *testing.T) {
	g := newTestGraph()

	assert.Equal(t, int64(0), g.parent(1), "root has no incoming edge")
	assert.Equal(t, int64(1), g.parent(2))
	assert.Equal(t, int64(2), g.parent(3))
	assert.Equal(t, int64(1), g.parent(4))
	assert.Equal(t, int64(4), g.parent(5))

	assert.Equal(t, 4, g.edges.Edges().Len())
}

func TestBuild_DoesNotShareCallerTree(t *testing.T) {
	tree := newTestTree()
	g := Build(tree)

	tree.Children[0].ID = "changed"
	tree.Children[0].Title = "changed"
	tree.Children = nil

	s, ok := g.Section("a")
	require.True(t, ok)
	assert.Equal(t, "a", s.Title)
	assert.Equal(t, "/a/aa/", g.FullPath("aa"))
	require.Len(t, g.Root().Children, 2)
}

func TestBuild_EmptyIDIsIndexed(t *testing.T) {
	g := Build(&SiteSection{
		ID:       Sep,
		Children: []*SiteSection{{ID: ""}},
	})

	s, ok := g.Section("")
	require.True(t, ok)
	assert.Equal(t, "", s.ID)
	assert.Equal(t, 2, g.Len())
}

func TestBuild_NilRoot(t *testing.T) {
	g := Build(nil)

	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Root())
	assert.Equal(t, "", g.FullPath(Sep))

	_, _, ok := g.Breadcrumbs("/a/")
	assert.False(t, ok)
	assert.Equal(t, "", g.TitlePath("/a/"))
}

func TestBuild_Brand(t *testing.T) {
	assert.Equal(t, DefaultBrand, newTestGraph().Brand())

	g := BuildWithOptions(newTestTree(), Options{Brand: "example.org"})
	assert.Equal(t, "example.org", g.Brand())
}

func TestSectionsInPreOrder(t *testing.T) {
	g := newTestGraph()

	var ids []string
	g.Sections(func(s *SiteSection) bool {
		ids = append(ids, s.ID)
		return true
	})
	assert.Equal(t, []string{"/", "a", "aa", "b", "bb"}, ids)

	ids = ids[:0]
	g.Sections(func(s *SiteSection) bool {
		ids = append(ids, s.ID)
		return len(ids) < 2
	})
	assert.Equal(t, []string{"/", "a"}, ids)
}

func TestSectionsWithPrefix(t *testing.T) {
	g := newTestGraph()

	var tests = []struct {
		prefix   string
		expected []string
	}{
		{"a", []string{"a", "aa"}},
		{"aa", []string{"aa"}},
		{"b", []string{"b", "bb"}},
		{"c", nil},
		{"", []string{"/", "a", "aa", "b", "bb"}},
	}

	for _, test := range tests {
		t.Run(test.prefix, func(t *testing.T) {
			var ids []string
			for _, s := range g.SectionsWithPrefix(test.prefix) {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, test.expected, ids)
		})
	}
}

func TestDescendants(t *testing.T) {
	g := newTestGraph()

	ids := func(sections []*SiteSection) []string {
		var out []string
		for _, s := range sections {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "aa", "b", "bb"}, ids(g.Descendants(Sep)))
	assert.Equal(t, []string{"aa"}, ids(g.Descendants("a")))
	assert.Empty(t, g.Descendants("bb"))
	assert.Nil(t, g.Descendants("unknown"))
}

func TestCloneChildren(t *testing.T) {
	g := newTestGraph()

	children := g.Root().CloneChildren("b")
	require.Len(t, children, 2)
	assert.False(t, children[0].Active)
	assert.True(t, children[1].Active)
	assert.Nil(t, children[0].Children)

	// The graph's own sections stay untouched.
	b, _ := g.Section("b")
	assert.False(t, b.Active)
}
