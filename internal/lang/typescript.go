package lang

import (
	"regexp"
	"strings"
)

// tsProvider covers TypeScript and JavaScript (plus JSX variants). It is the
// only provider that emits type-only imports (`import type { ... }`).
type tsProvider struct{}

// NewTypeScriptProvider returns the TypeScript/JavaScript provider.
func NewTypeScriptProvider() Provider {
	return &tsProvider{}
}

var (
	// import defaultExport, { a, b as c } from 'mod'  /  import type { T } from 'mod'
	tsImportRe = regexp.MustCompile(`^\s*import\s+(type\s+)?(.+?)\s+from\s+['"]([^'"]+)['"]`)
	// import 'mod' (side effect only)
	tsSideEffectRe = regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`)
	// const x = require('mod')
	tsRequireRe = regexp.MustCompile(`(?:const|let|var)\s+(\w+|\{[^}]*\})\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)
	// export { a } from 'mod'  /  export * from 'mod'
	tsReExportRe = regexp.MustCompile(`^\s*export\s+(\*|type\s+\{[^}]*\}|\{[^}]*\})\s*(?:as\s+\w+\s+)?from\s+['"]([^'"]+)['"]`)

	tsExportDeclRe    = regexp.MustCompile(`^\s*export\s+(?:declare\s+)?(default\s+)?(async\s+)?(function|class|interface|type|enum|const|let|var|namespace)\s+(\w+)`)
	tsExportDefaultRe = regexp.MustCompile(`^\s*export\s+default\s+(\w+)`)
	tsExportListRe    = regexp.MustCompile(`^\s*export\s+(type\s+)?\{([^}]*)\}\s*;?\s*$`)

	tsFunctionRe  = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:async\s+)?function\s+(\w+)`)
	tsClassRe     = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?class\s+(\w+)`)
	tsInterfaceRe = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:declare\s+)?interface\s+(\w+)`)
	tsTypeRe      = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:declare\s+)?type\s+(\w+)\s*=`)
	tsEnumRe      = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:declare\s+)?(?:const\s+)?enum\s+(\w+)`)
	tsNamespaceRe = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:declare\s+)?namespace\s+(\w+)`)
	tsVariableRe  = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:declare\s+)?(?:const|let|var)\s+(\w+)`)
	tsArrowFnRe   = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:const|let|var)\s+(\w+)\s*(?::[^=]+)?=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*(?::[^=]+)?=>`)
	tsMethodRe    = regexp.MustCompile(`^(\s+)(?:public\s+|private\s+|protected\s+|static\s+|readonly\s+)*(?:async\s+)?(\w+)\s*\([^)]*\)\s*(?::\s*[^{;]+)?\s*\{`)
)

var tsReservedMethodNames = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "constructor": false,
}

func (p *tsProvider) ID() string { return "typescript" }

func (p *tsProvider) Extensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
}

func (p *tsProvider) DiscoveryPatterns() []string {
	return []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs"}
}

func (p *tsProvider) CommentDelimiters() []string { return []string{"//", "/*", "*/"} }

func (p *tsProvider) ControlFlowKeywords() []string {
	return []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"}
}

func (p *tsProvider) EntryPointHints() []string {
	return []string{"index.ts", "index.js", "main.ts", "main.js", "app.ts", "server.ts", "cli.ts"}
}

func (p *tsProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := tsImportRe.FindStringSubmatch(line); m != nil {
			spec := ImportSpec{Source: m[3], Line: lineNo, TypeOnly: m[1] != ""}
			parseTSImportClause(m[2], &spec)
			imports = append(imports, spec)
			continue
		}
		if m := tsReExportRe.FindStringSubmatch(line); m != nil {
			// Re-exports pull from another module and so count as imports.
			spec := ImportSpec{Source: m[2], Line: lineNo, TypeOnly: strings.HasPrefix(m[1], "type")}
			clause := strings.TrimPrefix(m[1], "type")
			if strings.TrimSpace(clause) == "*" {
				spec.Specifiers = []string{"*"}
				spec.IsNamespace = true
			} else {
				spec.Specifiers = parseTSNamedList(clause)
			}
			imports = append(imports, spec)
			continue
		}
		if m := tsSideEffectRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, ImportSpec{Source: m[1], Specifiers: []string{}, Line: lineNo})
			continue
		}
		if m := tsRequireRe.FindStringSubmatch(line); m != nil {
			spec := ImportSpec{Source: m[2], Line: lineNo, IsDefault: true}
			if strings.HasPrefix(m[1], "{") {
				spec.IsDefault = false
				spec.Specifiers = parseTSNamedList(m[1])
			} else {
				spec.Specifiers = []string{m[1]}
			}
			imports = append(imports, spec)
		}
	}
	return imports
}

// parseTSImportClause fills specifiers from the clause between `import` and
// `from`: a default binding, a namespace binding, a named list, or a
// combination of default and named.
func parseTSImportClause(clause string, spec *ImportSpec) {
	clause = strings.TrimSpace(clause)

	if strings.HasPrefix(clause, "* as ") {
		spec.IsNamespace = true
		spec.Specifiers = []string{"*"}
		return
	}

	if idx := strings.Index(clause, "{"); idx >= 0 {
		named := clause[idx:]
		spec.Specifiers = parseTSNamedList(named)
		if def := strings.TrimSuffix(strings.TrimSpace(clause[:idx]), ","); def != "" {
			spec.IsDefault = true
			spec.Specifiers = append([]string{strings.TrimSpace(def)}, spec.Specifiers...)
		}
		return
	}

	spec.IsDefault = true
	spec.Specifiers = []string{clause}
}

// parseTSNamedList parses "{ a, b as c, type D }" into local binding names.
func parseTSNamedList(clause string) []string {
	clause = strings.Trim(strings.TrimSpace(clause), "{}")
	var names []string
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.TrimPrefix(part, "type ")
		if idx := strings.Index(part, " as "); idx >= 0 {
			part = strings.TrimSpace(part[idx+4:])
		}
		names = append(names, part)
	}
	if names == nil {
		names = []string{}
	}
	return names
}

func (p *tsProvider) ExtractExports(text string) []ExportSpec {
	var exports []ExportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := tsExportDeclRe.FindStringSubmatch(line); m != nil {
			exports = append(exports, ExportSpec{
				Name:      m[4],
				Kind:      tsKindFor(m[3]),
				IsDefault: m[1] != "",
				Line:      lineNo,
			})
			continue
		}
		if m := tsExportListRe.FindStringSubmatch(line); m != nil {
			for _, name := range parseTSExportedList(m[2]) {
				exports = append(exports, ExportSpec{Name: name, Kind: KindVariable, Line: lineNo})
			}
			continue
		}
		if m := tsExportDefaultRe.FindStringSubmatch(line); m != nil && m[1] != "function" && m[1] != "class" {
			exports = append(exports, ExportSpec{Name: m[1], Kind: KindVariable, IsDefault: true, Line: lineNo})
		}
	}
	return exports
}

// parseTSExportedList parses "a, b as c" keeping the exported (post-as) name.
func parseTSExportedList(clause string) []string {
	var names []string
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "type "))
		if part == "" {
			continue
		}
		if idx := strings.Index(part, " as "); idx >= 0 {
			part = strings.TrimSpace(part[idx+4:])
		}
		names = append(names, part)
	}
	return names
}

func tsKindFor(keyword string) SymbolKind {
	switch keyword {
	case "function":
		return KindFunction
	case "class":
		return KindClass
	case "interface":
		return KindInterface
	case "type":
		return KindType
	case "enum":
		return KindEnum
	case "namespace":
		return KindNamespace
	default:
		return KindVariable
	}
}

func (p *tsProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	inClass := false
	classIndent := 0

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		exported := strings.Contains(line, "export ")

		add := func(m []string, kind SymbolKind) {
			symbols = append(symbols, Symbol{
				Name:     m[2],
				Kind:     kind,
				FilePath: filePath,
				Line:     lineNo,
				Column:   len(m[1]),
				Exported: exported,
			})
		}

		switch {
		case tsClassRe.MatchString(line):
			m := tsClassRe.FindStringSubmatch(line)
			add(m, KindClass)
			inClass = true
			classIndent = len(m[1])
		case tsInterfaceRe.MatchString(line):
			add(tsInterfaceRe.FindStringSubmatch(line), KindInterface)
		case tsEnumRe.MatchString(line):
			add(tsEnumRe.FindStringSubmatch(line), KindEnum)
		case tsNamespaceRe.MatchString(line):
			add(tsNamespaceRe.FindStringSubmatch(line), KindNamespace)
		case tsFunctionRe.MatchString(line):
			add(tsFunctionRe.FindStringSubmatch(line), KindFunction)
		case tsTypeRe.MatchString(line):
			add(tsTypeRe.FindStringSubmatch(line), KindType)
		case tsArrowFnRe.MatchString(line):
			add(tsArrowFnRe.FindStringSubmatch(line), KindFunction)
		case tsVariableRe.MatchString(line) && !strings.Contains(line, "require("):
			add(tsVariableRe.FindStringSubmatch(line), KindVariable)
		case inClass && tsMethodRe.MatchString(line):
			m := tsMethodRe.FindStringSubmatch(line)
			if !tsReservedMethodNames[m[2]] {
				symbols = append(symbols, Symbol{
					Name:     m[2],
					Kind:     KindMethod,
					FilePath: filePath,
					Line:     lineNo,
					Column:   len(m[1]),
					Exported: false,
				})
			}
		}

		// A closing brace at or before the class's indent ends the class
		// body. Brace counting stays line-oriented on purpose.
		if inClass && strings.HasPrefix(trimmed, "}") && leadingSpaces(line) <= classIndent {
			inClass = false
		}
	}
	return symbols
}

var tsIndexNames = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

func (p *tsProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	// Bare specifiers are package imports and never resolve in-repo.
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") && specifier != "." && specifier != ".." {
		return "", false
	}
	return tryCandidates(resolveRelative(fromPath, specifier), p.Extensions(), tsIndexNames, existing)
}

func leadingSpaces(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' {
			n++
		} else if r == '\t' {
			n += 4
		} else {
			break
		}
	}
	return n
}
