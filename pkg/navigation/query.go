package navigation

import (
	"slices"
	"strings"
)

// titleSep joins the elements of a title path.
const titleSep = " | "

// Section returns the section registered under id.
func (g *Graph) Section(id string) (*SiteSection, bool) {
	n, ok := g.search[id]
	if !ok {
		return nil, false
	}
	return g.node(n), true
}

// FullPath returns the canonical "/seg1/seg2/" path of the section named id.
// The root is never a segment: FullPath of the root is Sep when the root's id
// is Sep. Unknown ids yield an empty string.
func (g *Graph) FullPath(id string) string {
	n, ok := g.search[id]
	if !ok {
		return ""
	}
	if n == rootNode {
		if id == Sep {
			return Sep
		}
		return ""
	}

	var segments []string
	for ; n != rootNode; n = g.parent(n) {
		if n == 0 {
			// Detached from the root.
			return ""
		}
		segments = append(segments, g.node(n).ID)
	}
	slices.Reverse(segments)

	return Sep + strings.Join(segments, Sep) + Sep
}

// Breadcrumbs resolves uri into its breadcrumb trail and the id of the
// current top level section.
//
// Every non-empty uri segment naming a known section is appended to the trail
// after the root; unknown segments are skipped. When uri ends with Sep right
// after the last resolved section, that section is the page itself and is
// left out of the trail. The current id is the root's id for the root alone,
// otherwise the first section under the root, however deep uri goes.
//
// ok is false only when the graph has no root registered under Sep.
func (g *Graph) Breadcrumbs(uri string) (trail []*SiteSection, current string, ok bool) {
	resolved, segments, ok := g.resolve(uri)
	if !ok {
		return nil, "", false
	}

	current = resolved[0].ID
	if len(resolved) > 1 {
		current = resolved[1].ID
	}

	trail = resolved
	if len(resolved) > 1 && strings.HasSuffix(uri, Sep) && len(segments) > 0 {
		last := resolved[len(resolved)-1]
		if segments[len(segments)-1] == last.ID {
			trail = resolved[:len(resolved)-1]
		}
	}
	return trail, current, true
}

// TitlePath builds the page title chain for uri, most specific section first,
// joined with " | " and closed by the brand. The home page ("" or Sep) has no
// title path and yields an empty string.
func (g *Graph) TitlePath(uri string) string {
	if uri == "" || uri == Sep {
		return ""
	}
	resolved, _, ok := g.resolve(uri)
	if !ok {
		return ""
	}

	ancestors := slices.Clone(resolved[1:])
	slices.Reverse(ancestors)
	if strings.HasSuffix(uri, Sep) && len(ancestors) > 0 {
		ancestors = ancestors[1:]
	}

	titles := make([]string, 0, len(ancestors)+1)
	for _, s := range ancestors {
		titles = append(titles, s.Title)
	}
	titles = append(titles, g.brand)
	return strings.Join(titles, titleSep)
}

// resolve returns the root followed by every known section named in uri,
// together with the non-empty uri segments.
func (g *Graph) resolve(uri string) ([]*SiteSection, []string, bool) {
	root, ok := g.Section(Sep)
	if !ok {
		return nil, nil, false
	}

	segments := strings.FieldsFunc(uri, func(r rune) bool {
		return r == '/'
	})

	resolved := make([]*SiteSection, 0, len(segments)+1)
	resolved = append(resolved, root)
	for _, part := range segments {
		if s, found := g.Section(part); found {
			resolved = append(resolved, s)
		}
	}
	return resolved, segments, true
}
