package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"egoroff.spb.ru/internal/mcp"
	"egoroff.spb.ru/pkg/navigation"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the navigation tools over MCP",
	Long: `Serve the navigation graph as Model Context Protocol tools.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	g, _, err := buildGraph()
	if err != nil {
		return err
	}
	s := mcp.NewMCPServer(func() *navigation.Graph { return g })

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return mcp.RunHTTP(ctx, s, addr)
	}
	return mcp.RunStdio(ctx, s)
}
