package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
)

// Test Plan for the symbol map:
// - Lookup finds declarations across files, including duplicate names
// - ReferenceCount counts resolved import sites targeting an exported name
// - Namespace imports count as references to every export of the target
// - Orphans lists exported symbols nobody imports, sorted by location
// - Unexported symbols never appear as orphans

func recordsFromTS(sources map[string]string) map[string]*indexer.FileRecord {
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
	return files
}

func TestLookup(t *testing.T) {
	t.Parallel()

	files := recordsFromTS(map[string]string{
		"src/a.ts": "export function parse() {}\n",
		"src/b.ts": "export function parse() {}\nexport function render() {}\n",
	})
	m := Build(files)

	parse := m.Lookup("parse")
	require.Len(t, parse, 2, "same name declared in two files")
	assert.Equal(t, "src/a.ts", parse[0].FilePath)
	assert.Equal(t, "src/b.ts", parse[1].FilePath)

	assert.Len(t, m.Lookup("render"), 1)
	assert.Nil(t, m.Lookup("missing"))
}

func TestReferenceCount(t *testing.T) {
	t.Parallel()

	files := recordsFromTS(map[string]string{
		"src/util.ts": "export function helper() {}\nexport function unused() {}\n",
		"src/a.ts":    "import { helper } from './util';\n",
		"src/b.ts":    "import { helper } from './util';\n",
	})
	m := Build(files)
	g := depgraph.Build(files, lang.NewRegistry())

	assert.Equal(t, 2, m.ReferenceCount("helper", g))
	assert.Equal(t, 0, m.ReferenceCount("unused", g))
	assert.Equal(t, 0, m.ReferenceCount("missing", g))
}

func TestReferenceCount_NamespaceImport(t *testing.T) {
	t.Parallel()

	files := recordsFromTS(map[string]string{
		"src/util.ts": "export function helper() {}\n",
		"src/a.ts":    "import * as util from './util';\n",
	})
	m := Build(files)
	g := depgraph.Build(files, lang.NewRegistry())

	assert.Equal(t, 1, m.ReferenceCount("helper", g),
		"namespace import binds every export of the target")
}

func TestOrphans(t *testing.T) {
	t.Parallel()

	files := recordsFromTS(map[string]string{
		"src/util.ts": "export function helper() {}\nexport function unused() {}\nfunction internal() {}\n",
		"src/a.ts":    "import { helper } from './util';\n",
	})
	m := Build(files)
	g := depgraph.Build(files, lang.NewRegistry())

	orphans := m.Orphans(g)
	names := make([]string, 0, len(orphans))
	for _, o := range orphans {
		names = append(names, o.Name)
	}
	assert.Contains(t, names, "unused")
	assert.NotContains(t, names, "helper", "imported exports are not orphans")
	assert.NotContains(t, names, "internal", "unexported symbols are never orphans")
}

func TestOrphans_Sorted(t *testing.T) {
	t.Parallel()

	files := recordsFromTS(map[string]string{
		"src/z.ts": "export function zz() {}\n",
		"src/a.ts": "export function aa() {}\nexport function bb() {}\n",
	})
	m := Build(files)
	g := depgraph.Build(files, lang.NewRegistry())

	orphans := m.Orphans(g)
	require.Len(t, orphans, 3)
	assert.Equal(t, "aa", orphans[0].Name)
	assert.Equal(t, "bb", orphans[1].Name)
	assert.Equal(t, "zz", orphans[2].Name)
}
