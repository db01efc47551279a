package server

import "egoroff.spb.ru/pkg/navigation"

// Navigation is the payload of the navigation endpoint: the top level
// sections with the current one marked active, plus the breadcrumb trail.
type Navigation struct {
	Sections    []*navigation.SiteSection `json:"sections,omitempty"`
	Breadcrumbs []*navigation.SiteSection `json:"breadcrumbs,omitempty"`
}

// PathResponse answers a full path query.
type PathResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// TitlePathResponse answers a title path query.
type TitlePathResponse struct {
	URI       string `json:"uri"`
	TitlePath string `json:"title_path"`
}

// SectionResponse describes one section and where it lives.
type SectionResponse struct {
	ID       string                    `json:"id"`
	Path     string                    `json:"path"`
	Icon     string                    `json:"icon,omitempty"`
	Title    string                    `json:"title,omitempty"`
	Descr    string                    `json:"descr,omitempty"`
	Keywords string                    `json:"keywords,omitempty"`
	Children []*navigation.SiteSection `json:"children,omitempty"`
}

// SectionListResponse is returned by the section search endpoint.
type SectionListResponse struct {
	Sections []SectionResponse `json:"sections"`
}

// ReloadResponse is returned when a reload task is accepted.
type ReloadResponse struct {
	TaskID string     `json:"task_id"`
	Status TaskStatus `json:"status"`
}

func newSectionResponse(g *navigation.Graph, s *navigation.SiteSection, withChildren bool) SectionResponse {
	resp := SectionResponse{
		ID:       s.ID,
		Path:     g.FullPath(s.ID),
		Icon:     s.Icon,
		Title:    s.Title,
		Descr:    s.Descr,
		Keywords: s.Keywords,
	}
	if withChildren {
		resp.Children = s.CloneChildren("")
	}
	return resp
}
