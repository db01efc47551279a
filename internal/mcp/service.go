package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"egoroff.spb.ru/pkg/metrics"
	"egoroff.spb.ru/pkg/navigation"
)

// GraphSource returns the navigation graph generation to answer from.
type GraphSource func() *navigation.Graph

type Service struct {
	graph GraphSource
}

func NewService(graph GraphSource) *Service {
	return &Service{graph: graph}
}

// --- Tool Handlers ---

func (s *Service) GetSection(ctx context.Context, req *mcp.CallToolRequest, args GetSectionArgs) (*mcp.CallToolResult, SectionResult, error) {
	g := s.graph()
	section, ok := g.Section(args.ID)
	metrics.Lookup("section", ok)
	if !ok {
		return nil, SectionResult{Found: false}, nil
	}

	res := SectionResult{
		Found:    true,
		ID:       section.ID,
		Path:     g.FullPath(section.ID),
		Title:    section.Title,
		Descr:    section.Descr,
		Keywords: section.Keywords,
	}
	for _, c := range section.Children {
		res.Children = append(res.Children, c.ID)
	}
	return nil, res, nil
}

func (s *Service) FullPath(ctx context.Context, req *mcp.CallToolRequest, args FullPathArgs) (*mcp.CallToolResult, FullPathResult, error) {
	fp := s.graph().FullPath(args.ID)
	metrics.Lookup("full_path", fp != "")
	return nil, FullPathResult{Path: fp}, nil
}

func (s *Service) Breadcrumbs(ctx context.Context, req *mcp.CallToolRequest, args BreadcrumbsArgs) (*mcp.CallToolResult, BreadcrumbsResult, error) {
	g := s.graph()
	trail, current, ok := g.Breadcrumbs(args.URI)
	metrics.Lookup("breadcrumbs", ok)
	if !ok {
		return nil, BreadcrumbsResult{Found: false}, nil
	}

	res := BreadcrumbsResult{Found: true, Current: current}
	for _, section := range trail {
		res.Trail = append(res.Trail, crumb(g, section))
	}
	return nil, res, nil
}

func (s *Service) TitlePath(ctx context.Context, req *mcp.CallToolRequest, args TitlePathArgs) (*mcp.CallToolResult, TitlePathResult, error) {
	title := s.graph().TitlePath(args.URI)
	metrics.Lookup("title_path", title != "")
	return nil, TitlePathResult{TitlePath: title}, nil
}

func (s *Service) FindSections(ctx context.Context, req *mcp.CallToolRequest, args FindSectionsArgs) (*mcp.CallToolResult, FindSectionsResult, error) {
	g := s.graph()
	found := g.SectionsWithPrefix(args.Prefix)

	res := FindSectionsResult{Sections: make([]Crumb, 0, len(found))}
	for _, section := range found {
		res.Sections = append(res.Sections, crumb(g, section))
	}
	return nil, res, nil
}

func crumb(g *navigation.Graph, s *navigation.SiteSection) Crumb {
	return Crumb{
		ID:    s.ID,
		Title: s.Title,
		Path:  g.FullPath(s.ID),
	}
}
