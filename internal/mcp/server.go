// Package mcp exposes the navigation graph as Model Context Protocol tools.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// NewMCPServer registers the navigation tools on a new MCP server.
func NewMCPServer(graph GraphSource) *mcp.Server {
	service := NewService(graph)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "egoroff.spb.ru navigation",
		Version: Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_section",
		Description: "Look up a site section by id, with its canonical path and direct children.",
	}, service.GetSection)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "full_path",
		Description: "Return the canonical /a/b/ path of a site section.",
	}, service.FullPath)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breadcrumbs",
		Description: "Resolve a request URI into its breadcrumb trail and the highlighted top level section.",
	}, service.Breadcrumbs)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "title_path",
		Description: "Build the page title chain (most specific first, ending with the site name) for a request URI.",
	}, service.TitlePath)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "find_sections",
		Description: "List sections whose id starts with a prefix.",
	}, service.FindSections)

	return s
}

// RunStdio serves s over stdio until ctx is cancelled.
func RunStdio(ctx context.Context, s *mcp.Server) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves s over streamable HTTP on addr until ctx is cancelled.
func RunHTTP(ctx context.Context, s *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
