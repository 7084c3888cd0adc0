// Package lang provides per-language extraction providers. Each provider
// pulls imports, exports, and symbols out of source text using line-oriented
// lexical heuristics (no ASTs), and resolves raw import specifiers to
// repo-relative file paths using that language's module conventions.
//
// Extraction is best-effort by contract: malformed or unfamiliar syntax
// yields fewer matches, never an error. This is what lets the indexer walk
// arbitrary trees without aborting on partially invalid files.
package lang

import "path"

// SymbolKind classifies a declared symbol.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindType      SymbolKind = "type"
	KindEnum      SymbolKind = "enum"
	KindNamespace SymbolKind = "namespace"
	KindVariable  SymbolKind = "variable"
	KindProperty  SymbolKind = "property"
)

// Symbol is a declaration found in a source file.
type Symbol struct {
	Name     string     `json:"name"`
	Kind     SymbolKind `json:"kind"`
	FilePath string     `json:"file_path"` // repo-relative, forward slashes
	Line     int        `json:"line"`      // 1-indexed
	Column   int        `json:"column"`    // 0-indexed
	Exported bool       `json:"exported"`
}

// ImportSpec is a raw, unresolved import statement.
// Source is the specifier text exactly as written (relative path, package
// name, module path). Specifiers is empty for side-effect-only imports and
// ["*"] for wildcard/namespace imports.
type ImportSpec struct {
	Source      string   `json:"source"`
	Specifiers  []string `json:"specifiers"`
	IsDefault   bool     `json:"is_default"`
	IsNamespace bool     `json:"is_namespace"`
	TypeOnly    bool     `json:"type_only,omitempty"` // type-erasure import form (TS only)
	Line        int      `json:"line"`
}

// ExportSpec is a declaration exported from a file.
type ExportSpec struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	IsDefault bool       `json:"is_default"`
	Line      int        `json:"line"`
}

// PathSet is the set of indexed repo-relative paths that import resolution
// tests candidates against.
type PathSet map[string]struct{}

// NewPathSet builds a PathSet from a list of paths.
func NewPathSet(paths []string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PathSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// Provider extracts structure from one language's source files and resolves
// its import specifiers. Implementations must be stateless and safe for
// concurrent use; extraction methods never fail.
type Provider interface {
	// ID returns the language identifier (e.g. "typescript", "python").
	ID() string

	// Extensions returns recognized file extensions including the dot.
	Extensions() []string

	// DiscoveryPatterns returns glob patterns used to find this language's
	// source files.
	DiscoveryPatterns() []string

	// ExtractImports returns every import statement found in text.
	ExtractImports(text string) []ImportSpec

	// ExtractExports returns every exported declaration found in text.
	ExtractExports(text string) []ExportSpec

	// ExtractSymbols returns every declaration found in text. filePath is
	// recorded on each symbol.
	ExtractSymbols(filePath, text string) []Symbol

	// ResolveImportPath maps a raw specifier written in fromPath to an
	// indexed file path. It tries the literal path, the literal path with
	// each recognized extension, and the language's directory-index
	// convention, returning the first candidate present in existing.
	// Bare/package-style specifiers and unresolvable paths return "", false.
	ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool)

	// CommentDelimiters returns line/block comment markers. Exposed for
	// external consumers (complexity scoring); unused internally.
	CommentDelimiters() []string

	// ControlFlowKeywords returns branch/loop keywords. Exposed for external
	// consumers (complexity scoring); unused internally.
	ControlFlowKeywords() []string

	// EntryPointHints returns path fragments that suggest a program entry
	// point. Exposed for external consumers (hot-path detection); unused
	// internally.
	EntryPointHints() []string
}

// resolveRelative joins a relative specifier against the importing file's
// directory and normalizes to a forward-slash repo-relative path. Returns
// "" when the specifier escapes the repository root.
func resolveRelative(fromPath, specifier string) string {
	joined := path.Join(path.Dir(fromPath), specifier)
	if joined == ".." || len(joined) >= 3 && joined[:3] == "../" {
		return ""
	}
	return joined
}

// tryCandidates returns the first candidate present in existing, testing the
// literal path, then the path with each extension appended, then each
// directory-index file under the path.
func tryCandidates(base string, exts, indexNames []string, existing PathSet) (string, bool) {
	if base == "" {
		return "", false
	}
	if existing.Has(base) {
		return base, true
	}
	for _, ext := range exts {
		if existing.Has(base + ext) {
			return base + ext, true
		}
	}
	for _, idx := range indexNames {
		if existing.Has(base + "/" + idx) {
			return base + "/" + idx, true
		}
	}
	return "", false
}
