package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egoroff.spb.ru/pkg/config"
	"egoroff.spb.ru/pkg/navigation"
	"egoroff.spb.ru/pkg/sitemap"
)

const testToken = "test-secret-token"

func testTree() *navigation.SiteSection {
	return &navigation.SiteSection{
		ID:    navigation.Sep,
		Title: "Home",
		Children: []*navigation.SiteSection{
			{
				ID: "a", Title: "a", Icon: "icon-a",
				Children: []*navigation.SiteSection{{ID: "aa", Title: "aa"}},
			},
			{
				ID: "b", Title: "b", Icon: "icon-b",
				Children: []*navigation.SiteSection{{ID: "bb", Title: "bb"}},
			},
		},
	}
}

func staticLoader(root *navigation.SiteSection) Loader {
	return func() (*navigation.SiteSection, error) {
		return root, nil
	}
}

func newTestServer(t *testing.T, load Loader) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.AuthToken = testToken
	cfg.CacheSize = 16

	s, err := NewServer(cfg, load)
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func authHeader() http.Header {
	return http.Header{"Authorization": []string{"Bearer " + testToken}}
}

func TestNewServer_LoaderFailure(t *testing.T) {
	_, err := NewServer(config.DefaultConfig(), func() (*navigation.SiteSection, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
}

func TestHealthzEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))
	doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/a/", nil)

	rec := doRequest(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "egoroff_navigation_sections")
	assert.Contains(t, rec.Body.String(), "egoroff_http_requests_total")
}

func TestNavigationEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/a/aa/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	nav := decode[Navigation](t, rec)
	require.Len(t, nav.Sections, 2)
	assert.True(t, nav.Sections[0].Active)
	assert.False(t, nav.Sections[1].Active)

	require.Len(t, nav.Breadcrumbs, 2)
	assert.Equal(t, "/", nav.Breadcrumbs[0].ID)
	assert.Equal(t, "a", nav.Breadcrumbs[1].ID)
	assert.Equal(t, "icon-a", nav.Breadcrumbs[1].Icon)
	assert.Nil(t, nav.Breadcrumbs[1].Children)
}

func TestNavigationEndpoint_Root(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	nav := decode[Navigation](t, rec)
	assert.Len(t, nav.Sections, 2)
	assert.Nil(t, nav.Breadcrumbs)
}

func TestNavigationEndpoint_NoRoot(t *testing.T) {
	s := newTestServer(t, staticLoader(&navigation.SiteSection{ID: "home"}))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/a/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{}\n", rec.Body.String())
}

func TestNavigationEndpoint_CachedPerGeneration(t *testing.T) {
	var calls atomic.Int32
	s := newTestServer(t, func() (*navigation.SiteSection, error) {
		if calls.Add(1) == 1 {
			return testTree(), nil
		}
		return &navigation.SiteSection{
			ID:       navigation.Sep,
			Children: []*navigation.SiteSection{{ID: "c"}},
		}, nil
	})

	first := doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/b/", nil).Body.String()
	assert.Equal(t, 1, s.cache.Len())
	assert.Equal(t, first, doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/b/", nil).Body.String())

	require.NoError(t, s.Reload())
	assert.Equal(t, 0, s.cache.Len())

	nav := decode[Navigation](t, doRequest(t, s, http.MethodGet, "/api/v2/navigation/?uri=/b/", nil))
	require.Len(t, nav.Sections, 1)
	assert.Equal(t, "c", nav.Sections[0].ID)
}

func TestFullPathEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/path/bb", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, PathResponse{ID: "bb", Path: "/b/bb/"}, decode[PathResponse](t, rec))

	rec = doRequest(t, s, http.MethodGet, "/api/v2/navigation/path/ab", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTitlePathEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/title?uri=/a/1.html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[TitlePathResponse](t, rec)
	assert.Equal(t, "a | "+navigation.DefaultBrand, resp.TitlePath)

	rec = doRequest(t, s, http.MethodGet, "/api/v2/navigation/title?uri=/", nil)
	assert.Equal(t, "", decode[TitlePathResponse](t, rec).TitlePath)
}

func TestSectionEndpoints(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/api/v2/navigation/section/a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	section := decode[SectionResponse](t, rec)
	assert.Equal(t, "/a/", section.Path)
	require.Len(t, section.Children, 1)
	assert.Equal(t, "aa", section.Children[0].ID)

	rec = doRequest(t, s, http.MethodGet, "/api/v2/navigation/section/zz", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v2/navigation/sections?prefix=b", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[SectionListResponse](t, rec)
	require.Len(t, list.Sections, 2)
	assert.Equal(t, "/b/", list.Sections[0].Path)
	assert.Equal(t, "/b/bb/", list.Sections[1].Path)
}

func TestSitemapEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/xml"))
	assert.Contains(t, rec.Body.String(), "<loc>https://www.egoroff.spb.ru/b/bb/</loc>")
}

func TestSitemapEndpoint_Documents(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SitemapDocuments = []sitemap.DocumentRef{
		{Section: "bb", Name: "1.html"},
		{Section: "missing", Name: "2.html"},
	}
	s, err := NewServer(cfg, staticLoader(testTree()))
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://www.egoroff.spb.ru/b/bb/1.html</loc>")
	assert.Contains(t, rec.Body.String(), "<changefreq>yearly</changefreq>")
	assert.NotContains(t, rec.Body.String(), "2.html")
}

func TestReloadEndpoint(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	rec := doRequest(t, s, http.MethodPost, "/system/reload", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/system/reload", authHeader())
	require.Equal(t, http.StatusAccepted, rec.Code)
	accepted := decode[ReloadResponse](t, rec)
	require.NotEmpty(t, accepted.TaskID)

	require.Eventually(t, func() bool {
		rec := doRequest(t, s, http.MethodGet, "/system/tasks/"+accepted.TaskID, authHeader())
		if rec.Code != http.StatusOK {
			return false
		}
		return decode[TaskSnapshot](t, rec).Status == TaskStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	rec = doRequest(t, s, http.MethodGet, "/system/tasks/unknown", authHeader())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload_FailureKeepsPreviousGraph(t *testing.T) {
	var fail atomic.Bool
	s := newTestServer(t, func() (*navigation.SiteSection, error) {
		if fail.Load() {
			return nil, errors.New("broken site map")
		}
		return testTree(), nil
	})
	before := s.Graph()

	fail.Store(true)
	assert.Error(t, s.Reload())
	assert.Same(t, before, s.Graph())
}

func TestReload_LatestLoadIsPublished(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	s := newTestServer(t, func() (*navigation.SiteSection, error) {
		switch calls.Add(1) {
		case 1:
			return testTree(), nil
		case 2:
			close(entered)
			<-release
			return &navigation.SiteSection{
				ID:       navigation.Sep,
				Children: []*navigation.SiteSection{{ID: "old"}},
			}, nil
		default:
			return &navigation.SiteSection{
				ID:       navigation.Sep,
				Children: []*navigation.SiteSection{{ID: "new"}},
			}, nil
		}
	})

	slow := make(chan error, 1)
	go func() { slow <- s.Reload() }()
	<-entered

	fast := make(chan error, 1)
	go func() { fast <- s.Reload() }()

	// The second reload must wait for the first one instead of racing it.
	select {
	case err := <-fast:
		t.Fatalf("second reload finished while the first was loading: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-slow)
	require.NoError(t, <-fast)

	_, hasNew := s.Graph().Section("new")
	_, hasOld := s.Graph().Section("old")
	assert.True(t, hasNew)
	assert.False(t, hasOld)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSystemEndpointsDisabledWithoutToken(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := NewServer(cfg, staticLoader(testTree()))
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/system/reload", authHeader())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t, staticLoader(testTree()))

	h := s.RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}
