package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
	"github.com/reposcope/reposcope/internal/symbols"
)

// Test Plan for the impact analyzer:
// - Nil and empty diffs yield an empty low-risk result
// - Directly changed symbols respect diff status and hunk line coverage
// - Affected modules come from the bounded blast-radius search
// - API changes classify breaking (export disappears), additive (appears),
//   and modified (touched but present on both sides)
// - Deleted files report their exports as breaking

func buildAnalyzer(t *testing.T, sources map[string]string, opts ...Option) *Analyzer {
	t.Helper()
	p := lang.NewTypeScriptProvider()
	files := make(map[string]*indexer.FileRecord, len(sources))
	for path, src := range sources {
		files[path] = &indexer.FileRecord{
			Path:     path,
			Language: p.ID(),
			Symbols:  p.ExtractSymbols(path, src),
			Imports:  p.ExtractImports(src),
			Exports:  p.ExtractExports(src),
		}
	}
	registry := lang.NewRegistry()
	graph := depgraph.Build(files, registry)
	return NewAnalyzer(files, graph, symbols.Build(files), registry, opts...)
}

func TestAnalyze_NilDiff(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function f() {}\n",
	})

	for _, diff := range []*DiffRecord{nil, {}} {
		result := a.Analyze(diff)
		require.NotNil(t, result)
		assert.Empty(t, result.DirectlyChanged)
		assert.Empty(t, result.AffectedModules)
		assert.Empty(t, result.PublicAPIChanges)
		assert.Empty(t, result.BoundaryViolations)
		assert.Equal(t, float64(0), result.RiskScore)
		assert.Equal(t, RiskLow, result.RiskLevel)
	}
}

func TestAnalyze_DirectlyChanged_AddedFile(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function f() {}\nexport function g() {}\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffAdded},
	}})

	require.Len(t, result.DirectlyChanged, 2)
	for _, cs := range result.DirectlyChanged {
		assert.Equal(t, ChangeAdded, cs.Change)
	}
}

func TestAnalyze_DirectlyChanged_HunkCoverage(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function f() {}\nexport function g() {}\nexport function h() {}\n",
	})

	// Hunk touches lines 1-2 only; h on line 3 is untouched.
	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffModified, Hunks: []Hunk{
			{NewStart: 1, NewLines: 2, Lines: []string{"+export function f() {}", " export function g() {}"}},
		}},
	}})

	names := changedNames(result.DirectlyChanged)
	assert.Contains(t, names, "f")
	assert.Contains(t, names, "g")
	assert.NotContains(t, names, "h")
	for _, cs := range result.DirectlyChanged {
		assert.Equal(t, ChangeModified, cs.Change)
	}
}

func TestAnalyze_AffectedModules(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "import { b } from './b';\n",
		"src/b.ts": "export const b = 1;\n",
		"src/c.ts": "import { a2 } from './a';\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/b.ts", Status: DiffModified},
	}})

	paths := make([]string, 0, len(result.AffectedModules))
	for _, m := range result.AffectedModules {
		paths = append(paths, m.Path)
	}
	assert.Contains(t, paths, "src/a.ts", "importer of the changed file is affected")
	assert.NotContains(t, paths, "src/b.ts", "changed files are excluded from affected")
}

func TestAnalyze_BreakingAPIChange(t *testing.T) {
	t.Parallel()

	// Current index no longer exports gone; the removed hunk line shows it
	// used to exist.
	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function kept() {}\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffModified, Hunks: []Hunk{
			{NewStart: 1, NewLines: 1, Lines: []string{"-export function gone() {}", " export function kept() {}"}},
		}},
	}})

	require.Len(t, result.PublicAPIChanges, 1)
	assert.Equal(t, "gone", result.PublicAPIChanges[0].Name)
	assert.Equal(t, APIBreaking, result.PublicAPIChanges[0].Kind)
}

func TestAnalyze_AdditiveAPIChange(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function old() {}\nexport function fresh() {}\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffModified, Hunks: []Hunk{
			{NewStart: 2, NewLines: 1, Lines: []string{"+export function fresh() {}"}},
		}},
	}})

	require.Len(t, result.PublicAPIChanges, 1)
	assert.Equal(t, "fresh", result.PublicAPIChanges[0].Name)
	assert.Equal(t, APIAdditive, result.PublicAPIChanges[0].Kind)
}

func TestAnalyze_ModifiedAPIChange(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/a.ts": "export function f() { return 2; }\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffModified, Hunks: []Hunk{
			{NewStart: 1, NewLines: 1, Lines: []string{
				"-export function f() { return 1; }",
				"+export function f() { return 2; }",
			}},
		}},
	}})

	require.Len(t, result.PublicAPIChanges, 1)
	assert.Equal(t, "f", result.PublicAPIChanges[0].Name)
	assert.Equal(t, APIModified, result.PublicAPIChanges[0].Kind)
}

func TestAnalyze_DeletedFileBreaksItsExports(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, map[string]string{
		"src/other.ts": "export const x = 1;\n",
	})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/a.ts", Status: DiffDeleted, Hunks: []Hunk{
			{OldStart: 1, OldLines: 1, Lines: []string{"-export function doomed() {}"}},
		}},
	}})

	require.Len(t, result.PublicAPIChanges, 1)
	assert.Equal(t, "doomed", result.PublicAPIChanges[0].Name)
	assert.Equal(t, APIBreaking, result.PublicAPIChanges[0].Kind)
	assert.Empty(t, result.DirectlyChanged, "no current record for a deleted file")
}

func changedNames(changed []ChangedSymbol) []string {
	names := make([]string, 0, len(changed))
	for _, cs := range changed {
		names = append(names, cs.Symbol.Name)
	}
	return names
}
