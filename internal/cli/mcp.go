package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/git"
	"github.com/reposcope/reposcope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve repository queries over MCP on stdio",
	Long: `MCP starts a Model Context Protocol server exposing repo_impact,
repo_graph, repo_symbols, and repo_cycles tools. The repository is indexed
on startup.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot()
	if err != nil {
		return err
	}

	eng, _, err := newEngine(rootDir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	server, err := mcp.NewServer(ctx, rootDir, eng, git.NewOperations())
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
