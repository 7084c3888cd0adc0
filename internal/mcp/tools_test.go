package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/engine"
	"github.com/reposcope/reposcope/internal/git"
	"github.com/reposcope/reposcope/internal/impact"
)

// Test Plan for MCP tools:
// - repo_graph returns the full dump, or one node's neighborhood for a path
// - repo_graph rejects paths outside the index
// - repo_symbols looks up declarations and lists orphans
// - repo_impact analyzes a mocked diff end to end
// - Missing required arguments produce tool errors, not Go errors

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/app.ts":  "import { helper } from './util';\nexport function main() {}\n",
		"src/util.ts": "export function helper() {}\nexport function unused() {}\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	e, err := engine.New(root)
	require.NoError(t, err)
	require.NoError(t, e.Index(context.Background()))
	return e
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool results are text content")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestGraphTool_FullDump(t *testing.T) {
	t.Parallel()

	handler := createGraphHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	nodes := payload["nodes"].([]interface{})
	assert.Len(t, nodes, 2)
}

func TestGraphTool_SingleNode(t *testing.T) {
	t.Parallel()

	handler := createGraphHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"path": "src/app.ts",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	assert.Equal(t, "src/app.ts", payload["path"])
	assert.Equal(t, []interface{}{"src/util.ts"}, payload["imports"])
}

func TestGraphTool_UnknownPath(t *testing.T) {
	t.Parallel()

	handler := createGraphHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"path": "src/nope.ts",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSymbolsTool_Lookup(t *testing.T) {
	t.Parallel()

	handler := createSymbolsHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"name": "helper",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	decls := payload["declarations"].([]interface{})
	require.Len(t, decls, 1)
	hit := decls[0].(map[string]interface{})
	assert.Equal(t, float64(1), hit["references"], "helper is imported once")
}

func TestSymbolsTool_Orphans(t *testing.T) {
	t.Parallel()

	handler := createSymbolsHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"orphans": true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	orphans := payload["orphans"].([]interface{})
	names := make([]string, 0, len(orphans))
	for _, o := range orphans {
		names = append(names, o.(map[string]interface{})["name"].(string))
	}
	assert.Contains(t, names, "unused")
	assert.NotContains(t, names, "helper")
}

func TestSymbolsTool_MissingName(t *testing.T) {
	t.Parallel()

	handler := createSymbolsHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestImpactTool_StagedDiff(t *testing.T) {
	t.Parallel()

	gitOps := git.NewMockGitOps()
	gitOps.StagedRecord = &impact.DiffRecord{Files: []impact.DiffFile{
		{Path: "src/util.ts", Status: impact.DiffModified},
	}}

	handler := createImpactHandler(testEngine(t), gitOps, "/tmp/never-used")

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	affected := payload["affected_modules"].([]interface{})
	require.Len(t, affected, 1)
	assert.Equal(t, "src/app.ts", affected[0].(map[string]interface{})["path"])
}

func TestImpactTool_MissingBaseRef(t *testing.T) {
	t.Parallel()

	gitOps := git.NewMockGitOps()

	handler := createImpactHandler(testEngine(t), gitOps, "/tmp/never-used")

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"base": "no-such-ref",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCyclesTool(t *testing.T) {
	t.Parallel()

	handler := createCyclesHandler(testEngine(t))

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	payload := resultJSON(t, result)
	assert.Equal(t, float64(0), payload["count"])
}
