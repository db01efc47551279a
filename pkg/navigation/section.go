// Package navigation turns the nested site section tree into a read-only
// directed graph and answers path, breadcrumb and title queries against it.
//
// A Graph is built once from a root SiteSection and never mutated afterwards,
// so it can be shared by any number of request handlers without locking.
// Reloading the tree means building a new Graph and publishing it through a
// Holder.
//
// Basic usage:
//
//	root, err := navigation.LoadFile("static/map.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g := navigation.Build(root)
//	fmt.Println(g.FullPath("blog")) // "/blog/"
package navigation

// Sep is the path separator. The root section uses it as its id.
const Sep = "/"

// SiteSection is a single node of the static site hierarchy.
type SiteSection struct {
	ID       string         `json:"id" yaml:"id"`
	Icon     string         `json:"icon,omitempty" yaml:"icon"`
	Title    string         `json:"title,omitempty" yaml:"title"`
	Descr    string         `json:"descr,omitempty" yaml:"descr"`
	Keywords string         `json:"keywords,omitempty" yaml:"keywords"`
	Active   bool           `json:"active,omitempty" yaml:"active"`
	Children []*SiteSection `json:"children,omitempty" yaml:"children"`
}

// IsLeaf reports whether the section has no children.
func (s *SiteSection) IsLeaf() bool {
	return len(s.Children) == 0
}

// Brief returns a childless copy carrying only the fields shown in a
// breadcrumb trail.
func (s *SiteSection) Brief() *SiteSection {
	return &SiteSection{
		ID:    s.ID,
		Icon:  s.Icon,
		Title: s.Title,
	}
}

// CloneChildren returns shallow, childless copies of the direct children.
// The child whose id equals current is marked Active.
func (s *SiteSection) CloneChildren(current string) []*SiteSection {
	if s.IsLeaf() {
		return nil
	}
	out := make([]*SiteSection, 0, len(s.Children))
	for _, c := range s.Children {
		out = append(out, &SiteSection{
			ID:       c.ID,
			Icon:     c.Icon,
			Title:    c.Title,
			Descr:    c.Descr,
			Keywords: c.Keywords,
			Active:   c.ID == current,
		})
	}
	return out
}
