package lang

import (
	"regexp"
	"sort"
	"strings"
)

// goProvider extracts Go files. Import specifiers name package directories,
// not files, so resolution strips any module-path prefix and settles on the
// lexically first .go file in the target directory.
type goProvider struct{}

// NewGoProvider returns the Go provider.
func NewGoProvider() Provider {
	return &goProvider{}
}

var (
	goImportSingleRe = regexp.MustCompile(`^import\s+(?:(\w+|\.)\s+)?"([^"]+)"`)
	goImportLineRe   = regexp.MustCompile(`^\s*(?:(\w+|\.|_)\s+)?"([^"]+)"\s*(?://.*)?$`)
	goFuncRe         = regexp.MustCompile(`^func\s+(\w+)\s*[(\[]`)
	goMethodRe       = regexp.MustCompile(`^func\s+\(\s*\w*\s*\*?(\w+)[^)]*\)\s+(\w+)\s*\(`)
	goTypeRe         = regexp.MustCompile(`^type\s+(\w+)\s+(struct|interface|func|\S+)`)
	goConstVarRe     = regexp.MustCompile(`^(const|var)\s+(\w+)`)
)

func (p *goProvider) ID() string { return "go" }

func (p *goProvider) Extensions() []string { return []string{".go"} }

func (p *goProvider) DiscoveryPatterns() []string { return []string{"**/*.go"} }

func (p *goProvider) CommentDelimiters() []string { return []string{"//", "/*", "*/"} }

func (p *goProvider) ControlFlowKeywords() []string {
	return []string{"if", "else", "for", "switch", "case", "select", "&&", "||"}
}

func (p *goProvider) EntryPointHints() []string {
	return []string{"main.go", "cmd/"}
}

func (p *goProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	inBlock := false

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if trimmed == ")" {
				inBlock = false
				continue
			}
			if m := goImportLineRe.FindStringSubmatch(line); m != nil {
				imports = append(imports, goImportFrom(m[1], m[2], lineNo))
			}
			continue
		}

		if strings.HasPrefix(trimmed, "import (") {
			inBlock = true
			continue
		}
		if m := goImportSingleRe.FindStringSubmatch(trimmed); m != nil {
			imports = append(imports, goImportFrom(m[1], m[2], lineNo))
		}
	}
	return imports
}

// goImportFrom builds an ImportSpec for one import line. A Go import always
// binds the whole package, so it is a namespace import; blank imports are
// side-effect only.
func goImportFrom(alias, source string, line int) ImportSpec {
	spec := ImportSpec{Source: source, Line: line, IsNamespace: true}
	switch alias {
	case "_":
		spec.Specifiers = []string{}
		spec.IsNamespace = false
	case ".":
		spec.Specifiers = []string{"*"}
	case "":
		if idx := strings.LastIndex(source, "/"); idx >= 0 {
			spec.Specifiers = []string{source[idx+1:]}
		} else {
			spec.Specifiers = []string{source}
		}
	default:
		spec.Specifiers = []string{alias}
	}
	return spec
}

func (p *goProvider) ExtractExports(text string) []ExportSpec {
	var exports []ExportSpec
	for _, sym := range p.ExtractSymbols("", text) {
		if !sym.Exported || sym.Kind == KindMethod {
			continue
		}
		exports = append(exports, ExportSpec{Name: sym.Name, Kind: sym.Kind, Line: sym.Line})
	}
	return exports
}

func (p *goProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := goMethodRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindMethod, FilePath: filePath,
				Line: lineNo, Exported: isGoExported(m[2]),
			})
			continue
		}
		if m := goFuncRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[1], Kind: KindFunction, FilePath: filePath,
				Line: lineNo, Exported: isGoExported(m[1]),
			})
			continue
		}
		if m := goTypeRe.FindStringSubmatch(line); m != nil {
			kind := KindType
			switch m[2] {
			case "struct":
				kind = KindClass
			case "interface":
				kind = KindInterface
			}
			symbols = append(symbols, Symbol{
				Name: m[1], Kind: kind, FilePath: filePath,
				Line: lineNo, Exported: isGoExported(m[1]),
			})
			continue
		}
		if m := goConstVarRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindVariable, FilePath: filePath,
				Line: lineNo, Exported: isGoExported(m[2]),
			})
		}
	}
	return symbols
}

func isGoExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func (p *goProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	if specifier == "" || strings.HasPrefix(specifier, ".") {
		return "", false
	}

	// Try the import path as-is, then with leading module-path elements
	// stripped (an in-repo import usually carries the module prefix).
	parts := strings.Split(specifier, "/")
	for i := 0; i < len(parts); i++ {
		dir := strings.Join(parts[i:], "/")
		if resolved, ok := firstGoFileIn(dir, existing); ok {
			return resolved, true
		}
	}
	return "", false
}

// firstGoFileIn returns the lexically first .go file directly inside dir.
// Deterministic so repeated builds produce identical graphs.
func firstGoFileIn(dir string, existing PathSet) (string, bool) {
	prefix := dir + "/"
	var candidates []string
	for p := range existing {
		if !strings.HasPrefix(p, prefix) || !strings.HasSuffix(p, ".go") {
			continue
		}
		rest := p[len(prefix):]
		if strings.Contains(rest, "/") || strings.HasSuffix(rest, "_test.go") {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return candidates[0], true
}
