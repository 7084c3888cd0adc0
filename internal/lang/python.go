package lang

import (
	"regexp"
	"strings"
)

// pyProvider extracts Python modules. Dotted module paths are mapped onto
// the repository tree (foo.bar -> foo/bar.py or foo/bar/__init__.py);
// relative imports count leading dots against the importing file's package.
type pyProvider struct{}

// NewPythonProvider returns the Python provider.
func NewPythonProvider() Provider {
	return &pyProvider{}
}

var (
	pyImportRe     = regexp.MustCompile(`^import\s+([\w.]+)(?:\s+as\s+(\w+))?\s*(?:#.*)?$`)
	pyFromImportRe = regexp.MustCompile(`^from\s+([\w.]*)\s+import\s+(.+?)\s*(?:#.*)?$`)
	pyDefRe        = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(\w+)`)
	pyClassRe      = regexp.MustCompile(`^(\s*)class\s+(\w+)`)
	pyAssignRe     = regexp.MustCompile(`^(\w+)\s*(?::[^=]+)?=`)
)

func (p *pyProvider) ID() string { return "python" }

func (p *pyProvider) Extensions() []string { return []string{".py"} }

func (p *pyProvider) DiscoveryPatterns() []string { return []string{"**/*.py"} }

func (p *pyProvider) CommentDelimiters() []string { return []string{"#", `"""`, "'''"} }

func (p *pyProvider) ControlFlowKeywords() []string {
	return []string{"if", "elif", "else", "for", "while", "except", "and", "or", "with"}
}

func (p *pyProvider) EntryPointHints() []string {
	return []string{"__main__.py", "main.py", "app.py", "manage.py", "cli.py"}
}

func (p *pyProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			// `import a.b` binds the module object itself: a namespace form.
			name := m[1]
			if m[2] != "" {
				name = m[2]
			}
			imports = append(imports, ImportSpec{
				Source:      m[1],
				Specifiers:  []string{name},
				IsNamespace: true,
				Line:        lineNo,
			})
			continue
		}
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			spec := ImportSpec{Source: m[1], Line: lineNo}
			clause := strings.Trim(strings.TrimSpace(m[2]), "()")
			if strings.TrimSpace(clause) == "*" {
				spec.Specifiers = []string{"*"}
				spec.IsNamespace = true
			} else {
				for _, part := range strings.Split(clause, ",") {
					part = strings.TrimSpace(part)
					if part == "" {
						continue
					}
					if idx := strings.Index(part, " as "); idx >= 0 {
						part = strings.TrimSpace(part[idx+4:])
					}
					spec.Specifiers = append(spec.Specifiers, part)
				}
			}
			imports = append(imports, spec)
		}
	}
	return imports
}

func (p *pyProvider) ExtractExports(text string) []ExportSpec {
	// Python has no export keyword: top-level definitions without a leading
	// underscore are the public surface.
	var exports []ExportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := pyDefRe.FindStringSubmatch(line); m != nil && m[1] == "" && !strings.HasPrefix(m[2], "_") {
			exports = append(exports, ExportSpec{Name: m[2], Kind: KindFunction, Line: lineNo})
			continue
		}
		if m := pyClassRe.FindStringSubmatch(line); m != nil && m[1] == "" && !strings.HasPrefix(m[2], "_") {
			exports = append(exports, ExportSpec{Name: m[2], Kind: KindClass, Line: lineNo})
			continue
		}
		if m := pyAssignRe.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[1], "_") {
			exports = append(exports, ExportSpec{Name: m[1], Kind: KindVariable, Line: lineNo})
		}
	}
	return exports
}

func (p *pyProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	classIndent := -1

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name:     m[2],
				Kind:     KindClass,
				FilePath: filePath,
				Line:     lineNo,
				Column:   len(m[1]),
				Exported: len(m[1]) == 0 && !strings.HasPrefix(m[2], "_"),
			})
			classIndent = len(m[1])
			continue
		}
		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			kind := KindFunction
			if classIndent >= 0 && indent > classIndent {
				kind = KindMethod
			}
			if indent == 0 {
				classIndent = -1
			}
			symbols = append(symbols, Symbol{
				Name:     m[2],
				Kind:     kind,
				FilePath: filePath,
				Line:     lineNo,
				Column:   indent,
				Exported: indent == 0 && !strings.HasPrefix(m[2], "_"),
			})
			continue
		}
		if m := pyAssignRe.FindStringSubmatch(line); m != nil {
			classIndent = -1
			symbols = append(symbols, Symbol{
				Name:     m[1],
				Kind:     KindVariable,
				FilePath: filePath,
				Line:     lineNo,
				Exported: !strings.HasPrefix(m[1], "_"),
			})
		}
	}
	return symbols
}

func (p *pyProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	if specifier == "" {
		return "", false
	}

	var base string
	if strings.HasPrefix(specifier, ".") {
		// Relative import: each leading dot beyond the first climbs one
		// package level.
		dots := 0
		for dots < len(specifier) && specifier[dots] == '.' {
			dots++
		}
		rest := strings.ReplaceAll(specifier[dots:], ".", "/")
		dir := pathDir(fromPath)
		for i := 1; i < dots; i++ {
			dir = pathDir(dir)
		}
		if dir == "." {
			dir = ""
		}
		base = joinNonEmpty(dir, rest)
	} else {
		// Absolute module path, mapped from the repository root. Anything
		// that does not land on an indexed file is an external package.
		base = strings.ReplaceAll(specifier, ".", "/")
	}

	return tryCandidates(base, p.Extensions(), []string{"__init__.py"}, existing)
}

func pathDir(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

func joinNonEmpty(dir, rest string) string {
	switch {
	case dir == "":
		return rest
	case rest == "":
		return dir
	default:
		return dir + "/" + rest
	}
}
