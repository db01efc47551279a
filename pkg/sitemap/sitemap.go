// Package sitemap renders the sitemaps.org urlset for the site sections.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"egoroff.spb.ru/pkg/navigation"
)

const xmlNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Change frequencies used by the site.
const (
	Weekly = "weekly"
	Yearly = "yearly"
)

// URLSet is the document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XmlNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is a single sitemap entry.
type URL struct {
	Location   string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// FromGraph lists the root and every section reachable from it, in pre-order,
// followed by extra. Sections are addressed by their full path under site.
func FromGraph(g *navigation.Graph, site string, extra ...URL) URLSet {
	site = strings.TrimSuffix(site, navigation.Sep)
	set := URLSet{XmlNS: xmlNS}

	root := g.Root()
	if root == nil {
		set.URLs = append(set.URLs, extra...)
		return set
	}

	set.URLs = append(set.URLs, URL{
		Location:   site + navigation.Sep,
		ChangeFreq: Weekly,
		Priority:   1.0,
	})
	for _, s := range g.Descendants(root.ID) {
		fp := g.FullPath(s.ID)
		if fp == "" {
			continue
		}
		set.URLs = append(set.URLs, URL{
			Location:   site + fp,
			ChangeFreq: Weekly,
			Priority:   0.7,
		})
	}
	set.URLs = append(set.URLs, extra...)
	return set
}

// Document returns a page URL living inside the section named sectionID,
// e.g. "https://www.egoroff.spb.ru/blog/1.html".
func Document(g *navigation.Graph, site, sectionID, name string) (URL, bool) {
	fp := g.FullPath(sectionID)
	if fp == "" {
		return URL{}, false
	}
	return URL{
		Location:   strings.TrimSuffix(site, navigation.Sep) + fp + name,
		ChangeFreq: Yearly,
		Priority:   1.0,
	}, true
}

// DocumentRef names a page file inside a section, as listed in the
// configuration.
type DocumentRef struct {
	Section string `yaml:"section"`
	Name    string `yaml:"name"`
}

// Documents resolves refs into page URLs. Refs naming unknown sections are
// left out.
func Documents(g *navigation.Graph, site string, refs []DocumentRef) []URL {
	var urls []URL
	for _, ref := range refs {
		if u, ok := Document(g, site, ref.Section, ref.Name); ok {
			urls = append(urls, u)
		}
	}
	return urls
}

// Marshal renders set as an indented XML document with its declaration.
func Marshal(set URLSet) ([]byte, error) {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
