// Package symbols provides a repo-wide index of declared symbols keyed by
// name, with fan-in queries computed against the dependency graph.
package symbols

import (
	"sort"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
)

// Map indexes every extracted symbol by name. One name may map to multiple
// declarations across files. Built once from a completed index; immutable
// afterwards.
type Map struct {
	byName map[string][]lang.Symbol
	files  map[string]*indexer.FileRecord
}

// Build constructs a symbol map from the indexer's file records.
func Build(files map[string]*indexer.FileRecord) *Map {
	m := &Map{
		byName: make(map[string][]lang.Symbol),
		files:  files,
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, sym := range files[path].Symbols {
			m.byName[sym.Name] = append(m.byName[sym.Name], sym)
		}
	}
	return m
}

// Lookup returns every declaration of name across the repo, or nil if the
// name was never declared.
func (m *Map) Lookup(name string) []lang.Symbol {
	return m.byName[name]
}

// Len returns the number of distinct symbol names.
func (m *Map) Len() int {
	return len(m.byName)
}

// ReferenceCount returns the number of import specifiers across the whole
// repo whose resolved target exports name. It is computed lazily against the
// graph's resolved imports rather than cached, since it depends on resolved
// edges and most names are never queried.
func (m *Map) ReferenceCount(name string, g *depgraph.Graph) int {
	count := 0
	for _, ri := range g.ResolvedImports() {
		rec := m.files[ri.ToPath]
		if rec == nil || !fileExports(rec, name) {
			continue
		}
		if specReferences(ri.Spec, rec, name) {
			count++
		}
	}
	return count
}

// Orphans returns every exported symbol with zero fan-in, sorted by file
// path then line. Exported symbols whose name never appears in any resolved
// import specifier are orphans even when the file itself is imported for
// other names.
func (m *Map) Orphans(g *depgraph.Graph) []lang.Symbol {
	referenced := m.referencedNames(g)

	var orphans []lang.Symbol
	for _, syms := range m.byName {
		for _, sym := range syms {
			if !sym.Exported {
				continue
			}
			if referenced[sym.FilePath][sym.Name] {
				continue
			}
			orphans = append(orphans, sym)
		}
	}

	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].FilePath != orphans[j].FilePath {
			return orphans[i].FilePath < orphans[j].FilePath
		}
		if orphans[i].Line != orphans[j].Line {
			return orphans[i].Line < orphans[j].Line
		}
		return orphans[i].Name < orphans[j].Name
	})
	return orphans
}

// referencedNames walks every resolved import once and records, per target
// file, which exported names are referenced by at least one import site.
func (m *Map) referencedNames(g *depgraph.Graph) map[string]map[string]bool {
	referenced := make(map[string]map[string]bool)
	mark := func(path, name string) {
		if referenced[path] == nil {
			referenced[path] = make(map[string]bool)
		}
		referenced[path][name] = true
	}

	for _, ri := range g.ResolvedImports() {
		rec := m.files[ri.ToPath]
		if rec == nil {
			continue
		}
		switch {
		case ri.Spec.IsNamespace || hasStar(ri.Spec.Specifiers):
			// Namespace and wildcard imports bind the whole module.
			for _, exp := range rec.Exports {
				mark(ri.ToPath, exp.Name)
			}
		default:
			if ri.Spec.IsDefault {
				for _, exp := range rec.Exports {
					if exp.IsDefault {
						mark(ri.ToPath, exp.Name)
					}
				}
			}
			for _, name := range ri.Spec.Specifiers {
				mark(ri.ToPath, name)
			}
		}
	}
	return referenced
}

func specReferences(spec lang.ImportSpec, rec *indexer.FileRecord, name string) bool {
	if spec.IsNamespace || hasStar(spec.Specifiers) {
		return true
	}
	if spec.IsDefault && exportIsDefault(rec, name) {
		return true
	}
	for _, s := range spec.Specifiers {
		if s == name {
			return true
		}
	}
	return false
}

func fileExports(rec *indexer.FileRecord, name string) bool {
	for _, exp := range rec.Exports {
		if exp.Name == name {
			return true
		}
	}
	return false
}

func exportIsDefault(rec *indexer.FileRecord, name string) bool {
	for _, exp := range rec.Exports {
		if exp.Name == name && exp.IsDefault {
			return true
		}
	}
	return false
}

func hasStar(specifiers []string) bool {
	for _, s := range specifiers {
		if s == "*" {
			return true
		}
	}
	return false
}
