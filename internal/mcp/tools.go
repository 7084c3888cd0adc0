package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/reposcope/reposcope/internal/git"
	"github.com/reposcope/reposcope/internal/lang"
)

// AddImpactTool registers the repo_impact tool with an MCP server.
// Registration functions are composable; cmd wiring combines them.
func AddImpactTool(s *server.MCPServer, engine QueryEngine, gitOps git.Operations, rootDir string) {
	tool := mcp.NewTool(
		"repo_impact",
		mcp.WithDescription("Analyze the impact of a change set: directly changed symbols, transitively affected modules with distances, public API changes, architectural boundary violations, and an aggregate risk score."),
		mcp.WithString("base",
			mcp.Description("Base git ref to diff from (e.g. 'main'). When omitted, staged changes are analyzed.")),
		mcp.WithString("head",
			mcp.Description("Head git ref to diff to (default: 'HEAD'). Ignored when base is omitted.")),
	)

	s.AddTool(tool, createImpactHandler(engine, gitOps, rootDir))
}

func createImpactHandler(engine QueryEngine, gitOps git.Operations, rootDir string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		base, err := parseStringArg(argsMap, "base", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		head, err := parseStringArg(argsMap, "head", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if head == "" {
			head = "HEAD"
		}

		diff := gitOps.StagedDiff(rootDir)
		if base != "" {
			if !gitOps.RefExists(rootDir, base) {
				return mcp.NewToolResultError(fmt.Sprintf("ref %q does not exist", base)), nil
			}
			diff = gitOps.Diff(rootDir, base, head)
		}

		result, err := engine.Analyze(diff)
		if err != nil {
			return nil, fmt.Errorf("impact analysis failed: %w", err)
		}
		return jsonResult(result)
	}
}

// AddGraphTool registers the repo_graph tool with an MCP server.
func AddGraphTool(s *server.MCPServer, engine QueryEngine) {
	tool := mcp.NewTool(
		"repo_graph",
		mcp.WithDescription("Return the repository dependency graph as nodes and edges, or the imports/importers of one file."),
		mcp.WithString("path",
			mcp.Description("Repo-relative file path. When given, only that node's imports and importers are returned.")),
	)

	s.AddTool(tool, createGraphHandler(engine))
}

func createGraphHandler(engine QueryEngine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		path, err := parseStringArg(argsMap, "path", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if path != "" {
			g, err := engine.Graph()
			if err != nil {
				return nil, err
			}
			if g.Node(path) == nil {
				return mcp.NewToolResultError(fmt.Sprintf("path %q is not in the index", path)), nil
			}
			return jsonResult(map[string]interface{}{
				"path":        path,
				"imports":     g.ImportsOf(path),
				"imported_by": g.ImportersOf(path),
			})
		}

		dump, err := engine.DumpGraph()
		if err != nil {
			return nil, err
		}
		return jsonResult(dump)
	}
}

// AddSymbolsTool registers the repo_symbols tool with an MCP server.
func AddSymbolsTool(s *server.MCPServer, engine QueryEngine) {
	tool := mcp.NewTool(
		"repo_symbols",
		mcp.WithDescription("Look up symbol declarations by name with reference counts, or list orphan exports (exported symbols nobody imports)."),
		mcp.WithString("name",
			mcp.Description("Symbol name to look up. Required unless orphans is true.")),
		mcp.WithBoolean("orphans",
			mcp.Description("When true, list every exported symbol with zero fan-in instead of looking up a name.")),
	)

	s.AddTool(tool, createSymbolsHandler(engine))
}

// symbolHit is one declaration plus its repo-wide fan-in.
type symbolHit struct {
	Symbol     lang.Symbol `json:"symbol"`
	References int         `json:"references"`
}

func createSymbolsHandler(engine QueryEngine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		syms, err := engine.Symbols()
		if err != nil {
			return nil, err
		}
		g, err := engine.Graph()
		if err != nil {
			return nil, err
		}

		if parseBoolArg(argsMap, "orphans", false) {
			return jsonResult(map[string]interface{}{"orphans": syms.Orphans(g)})
		}

		name, err := parseStringArg(argsMap, "name", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		decls := syms.Lookup(name)
		hits := make([]symbolHit, 0, len(decls))
		refs := syms.ReferenceCount(name, g)
		for _, sym := range decls {
			hits = append(hits, symbolHit{Symbol: sym, References: refs})
		}
		return jsonResult(map[string]interface{}{
			"name":         name,
			"declarations": hits,
		})
	}
}

// AddCyclesTool registers the repo_cycles tool with an MCP server.
func AddCyclesTool(s *server.MCPServer, engine QueryEngine) {
	tool := mcp.NewTool(
		"repo_cycles",
		mcp.WithDescription("List every distinct import cycle in the repository's dependency graph."),
	)

	s.AddTool(tool, createCyclesHandler(engine))
}

func createCyclesHandler(engine QueryEngine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cycles, err := engine.Cycles()
		if err != nil {
			return nil, err
		}
		return jsonResult(map[string]interface{}{
			"cycles": cycles,
			"count":  len(cycles),
		})
	}
}

// jsonResult marshals v and returns it as a text result (mcp-go convention).
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
