package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"egoroff.spb.ru/pkg/metrics"
	"egoroff.spb.ru/pkg/navigation"
	"egoroff.spb.ru/pkg/sitemap"
)

// registerHTTPHandlers sets up the routes of the site API.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	// --- Navigation ---
	mux.HandleFunc("GET /api/v2/navigation/{$}", s.handleNavigation)
	mux.HandleFunc("GET /api/v2/navigation/path/{id}", s.handleFullPath)
	mux.HandleFunc("GET /api/v2/navigation/title", s.handleTitlePath)
	mux.HandleFunc("GET /api/v2/navigation/sections", s.handleSectionSearch)
	mux.HandleFunc("GET /api/v2/navigation/section/{id}", s.handleSection)

	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)

	// --- System ---
	mux.HandleFunc("POST /system/reload", s.authMiddleware(s.handleReload))
	mux.HandleFunc("GET /system/tasks/{id}", s.authMiddleware(s.handleGetTask))
}

// handleNavigation serves the navigation menu and breadcrumbs for ?uri=.
// An unknown uri is not an error: the response is simply empty.
func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	g := s.Graph()

	if nav, ok := s.cache.Get(g, uri); ok {
		s.writeHTTPResponse(w, http.StatusOK, nav)
		return
	}

	trail, current, ok := g.Breadcrumbs(uri)
	metrics.Lookup("breadcrumbs", ok)
	if !ok {
		s.writeHTTPResponse(w, http.StatusOK, Navigation{})
		return
	}

	nav := Navigation{
		Sections: trail[0].CloneChildren(current),
	}
	if uri != navigation.Sep {
		nav.Breadcrumbs = make([]*navigation.SiteSection, 0, len(trail))
		for _, section := range trail {
			nav.Breadcrumbs = append(nav.Breadcrumbs, section.Brief())
		}
	}

	s.cache.Add(g, uri, nav)
	s.writeHTTPResponse(w, http.StatusOK, nav)
}

func (s *Server) handleFullPath(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	fp := s.Graph().FullPath(id)
	metrics.Lookup("full_path", fp != "")
	if fp == "" {
		s.writeHTTPError(w, http.StatusNotFound, "section not found")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, PathResponse{ID: id, Path: fp})
}

func (s *Server) handleTitlePath(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	title := s.Graph().TitlePath(uri)
	metrics.Lookup("title_path", title != "")
	s.writeHTTPResponse(w, http.StatusOK, TitlePathResponse{URI: uri, TitlePath: title})
}

func (s *Server) handleSectionSearch(w http.ResponseWriter, r *http.Request) {
	g := s.Graph()
	found := g.SectionsWithPrefix(r.URL.Query().Get("prefix"))

	resp := SectionListResponse{Sections: make([]SectionResponse, 0, len(found))}
	for _, section := range found {
		resp.Sections = append(resp.Sections, newSectionResponse(g, section, false))
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	g := s.Graph()
	section, ok := g.Section(r.PathValue("id"))
	metrics.Lookup("section", ok)
	if !ok {
		s.writeHTTPError(w, http.StatusNotFound, "section not found")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, newSectionResponse(g, section, true))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	g := s.Graph()
	docs := sitemap.Documents(g, s.cfg.SiteURL, s.cfg.SitemapDocuments)
	data, err := sitemap.Marshal(sitemap.FromGraph(g, s.cfg.SiteURL, docs...))
	if err != nil {
		slog.Error("Sitemap rendering failed", "error", err)
		s.writeHTTPError(w, http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleReload starts an asynchronous reload and returns its task id.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	task := s.taskManager.NewTask()

	go func() {
		task.SetStatus(TaskStatusRunning)
		task.SetProgress("loading site map")
		err := s.Reload()
		if err != nil {
			slog.Error("Site map reload failed", "task", task.ID, "error", err)
		}
		s.taskManager.Finish(task, err)
	}()

	s.writeHTTPResponse(w, http.StatusAccepted, ReloadResponse{TaskID: task.ID, Status: TaskStatusStarted})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, found := s.taskManager.GetTask(r.PathValue("id"))
	if !found {
		s.writeHTTPError(w, http.StatusNotFound, "task not found")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, task.Snapshot())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.Graph().Len() == 0 {
		s.writeHTTPError(w, http.StatusServiceUnavailable, "navigation graph is empty")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}
