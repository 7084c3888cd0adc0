package lang

import (
	"regexp"
	"strings"
)

// rbProvider extracts Ruby files. Only require_relative produces resolvable
// paths; plain require almost always names a gem and stays unresolved.
type rbProvider struct{}

// NewRubyProvider returns the Ruby provider.
func NewRubyProvider() Provider {
	return &rbProvider{}
}

var (
	rbRequireRe         = regexp.MustCompile(`^\s*require\s+['"]([^'"]+)['"]`)
	rbRequireRelativeRe = regexp.MustCompile(`^\s*require_relative\s+['"]([^'"]+)['"]`)
	rbDefRe             = regexp.MustCompile(`^(\s*)def\s+(?:self\.)?([\w?!=]+)`)
	rbClassRe           = regexp.MustCompile(`^(\s*)class\s+([A-Z]\w*)`)
	rbModuleRe          = regexp.MustCompile(`^(\s*)module\s+([A-Z]\w*)`)
	rbConstRe           = regexp.MustCompile(`^(\s*)([A-Z][A-Z0-9_]*)\s*=`)
)

func (p *rbProvider) ID() string { return "ruby" }

func (p *rbProvider) Extensions() []string { return []string{".rb"} }

func (p *rbProvider) DiscoveryPatterns() []string { return []string{"**/*.rb", "**/*.rake"} }

func (p *rbProvider) CommentDelimiters() []string { return []string{"#", "=begin", "=end"} }

func (p *rbProvider) ControlFlowKeywords() []string {
	return []string{"if", "elsif", "else", "unless", "while", "until", "case", "when", "rescue", "&&", "||"}
}

func (p *rbProvider) EntryPointHints() []string {
	return []string{"main.rb", "app.rb", "config.ru", "Rakefile", "bin/"}
}

func (p *rbProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := rbRequireRelativeRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, ImportSpec{Source: m[1], Specifiers: []string{}, Line: lineNo})
			continue
		}
		if m := rbRequireRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, ImportSpec{Source: m[1], Specifiers: []string{}, Line: lineNo})
		}
	}
	return imports
}

func (p *rbProvider) ExtractExports(text string) []ExportSpec {
	// Ruby constants, classes and modules are public unless the file says
	// otherwise; treat top-level ones as the exported surface.
	var exports []ExportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := rbClassRe.FindStringSubmatch(line); m != nil {
			exports = append(exports, ExportSpec{Name: m[2], Kind: KindClass, Line: lineNo})
			continue
		}
		if m := rbModuleRe.FindStringSubmatch(line); m != nil {
			exports = append(exports, ExportSpec{Name: m[2], Kind: KindNamespace, Line: lineNo})
			continue
		}
		if m := rbConstRe.FindStringSubmatch(line); m != nil && m[1] == "" {
			exports = append(exports, ExportSpec{Name: m[2], Kind: KindVariable, Line: lineNo})
		}
	}
	return exports
}

func (p *rbProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	containerIndent := -1

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := rbClassRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindClass, FilePath: filePath,
				Line: lineNo, Column: len(m[1]), Exported: true,
			})
			containerIndent = len(m[1])
			continue
		}
		if m := rbModuleRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindNamespace, FilePath: filePath,
				Line: lineNo, Column: len(m[1]), Exported: true,
			})
			containerIndent = len(m[1])
			continue
		}
		if m := rbDefRe.FindStringSubmatch(line); m != nil {
			kind := KindFunction
			if containerIndent >= 0 && len(m[1]) > containerIndent {
				kind = KindMethod
			}
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: kind, FilePath: filePath,
				Line: lineNo, Column: len(m[1]),
				Exported: !strings.HasPrefix(m[2], "_"),
			})
			continue
		}
		if m := rbConstRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindVariable, FilePath: filePath,
				Line: lineNo, Column: len(m[1]), Exported: true,
			})
		}
	}
	return symbols
}

func (p *rbProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	if specifier == "" {
		return "", false
	}

	// require_relative style: anchored at the importing file.
	if base := resolveRelative(fromPath, specifier); base != "" {
		if resolved, ok := tryCandidates(base, p.Extensions(), nil, existing); ok {
			return resolved, true
		}
	}

	// require with a path that happens to live in the repo (lib/ layouts).
	if resolved, ok := tryCandidates(specifier, p.Extensions(), nil, existing); ok {
		return resolved, true
	}
	if resolved, ok := tryCandidates("lib/"+specifier, p.Extensions(), nil, existing); ok {
		return resolved, true
	}
	return "", false
}
