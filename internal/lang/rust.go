package lang

import (
	"regexp"
	"strings"
)

// rsProvider extracts Rust files. `use crate::a::b` maps onto src/a/b.rs or
// src/a/b/mod.rs; `mod foo;` anchors at the declaring file's directory.
type rsProvider struct{}

// NewRustProvider returns the Rust provider.
func NewRustProvider() Provider {
	return &rsProvider{}
}

var (
	rsUseRe    = regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)(?:::\{([^}]*)\}|::(\*))?\s*(?:as\s+\w+\s*)?;`)
	rsModRe    = regexp.MustCompile(`^\s*(?:pub\s+)?mod\s+(\w+)\s*;`)
	rsFnRe     = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+(\w+)`)
	rsStructRe = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?struct\s+(\w+)`)
	rsEnumRe   = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?enum\s+(\w+)`)
	rsTraitRe  = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?(?:unsafe\s+)?trait\s+(\w+)`)
	rsTypeRe   = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?type\s+(\w+)`)
	rsConstRe  = regexp.MustCompile(`^(\s*)(?:pub(?:\([\w:\s]*\))?\s+)?(?:const|static)\s+(\w+)`)
	rsImplRe   = regexp.MustCompile(`^\s*impl\b`)
)

func (p *rsProvider) ID() string { return "rust" }

func (p *rsProvider) Extensions() []string { return []string{".rs"} }

func (p *rsProvider) DiscoveryPatterns() []string { return []string{"**/*.rs"} }

func (p *rsProvider) CommentDelimiters() []string { return []string{"//", "/*", "*/"} }

func (p *rsProvider) ControlFlowKeywords() []string {
	return []string{"if", "else", "for", "while", "loop", "match", "&&", "||"}
}

func (p *rsProvider) EntryPointHints() []string {
	return []string{"src/main.rs", "src/lib.rs", "src/bin/"}
}

func (p *rsProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if m := rsModRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, ImportSpec{Source: "mod " + m[1], Specifiers: []string{m[1]}, Line: lineNo})
			continue
		}
		if m := rsUseRe.FindStringSubmatch(line); m != nil {
			spec := ImportSpec{Source: m[1], Line: lineNo}
			switch {
			case m[3] == "*":
				spec.Specifiers = []string{"*"}
				spec.IsNamespace = true
			case m[2] != "":
				for _, part := range strings.Split(m[2], ",") {
					part = strings.TrimSpace(part)
					if part == "" {
						continue
					}
					if idx := strings.Index(part, " as "); idx >= 0 {
						part = strings.TrimSpace(part[idx+4:])
					}
					spec.Specifiers = append(spec.Specifiers, part)
				}
			default:
				// `use a::b::C;` binds the final segment.
				segs := strings.Split(m[1], "::")
				spec.Specifiers = []string{segs[len(segs)-1]}
			}
			imports = append(imports, spec)
		}
	}
	return imports
}

func (p *rsProvider) ExtractExports(text string) []ExportSpec {
	var exports []ExportSpec
	for _, sym := range p.ExtractSymbols("", text) {
		if !sym.Exported || sym.Kind == KindMethod {
			continue
		}
		exports = append(exports, ExportSpec{Name: sym.Name, Kind: sym.Kind, Line: sym.Line})
	}
	return exports
}

func (p *rsProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	implIndent := -1

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if rsImplRe.MatchString(line) {
			implIndent = leadingSpaces(line)
			continue
		}

		add := func(m []string, kind SymbolKind) {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: kind, FilePath: filePath,
				Line: lineNo, Column: len(m[1]),
				Exported: strings.Contains(line, "pub "),
			})
		}

		switch {
		case rsStructRe.MatchString(line):
			add(rsStructRe.FindStringSubmatch(line), KindClass)
		case rsEnumRe.MatchString(line):
			add(rsEnumRe.FindStringSubmatch(line), KindEnum)
		case rsTraitRe.MatchString(line):
			add(rsTraitRe.FindStringSubmatch(line), KindInterface)
		case rsTypeRe.MatchString(line):
			add(rsTypeRe.FindStringSubmatch(line), KindType)
		case rsConstRe.MatchString(line):
			add(rsConstRe.FindStringSubmatch(line), KindVariable)
		case rsFnRe.MatchString(line):
			m := rsFnRe.FindStringSubmatch(line)
			kind := KindFunction
			if implIndent >= 0 && len(m[1]) > implIndent {
				kind = KindMethod
			}
			add(m, kind)
		}

		if implIndent >= 0 && strings.TrimSpace(line) == "}" && leadingSpaces(line) <= implIndent {
			implIndent = -1
		}
	}
	return symbols
}

var rsIndexNames = []string{"mod.rs"}

func (p *rsProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	if specifier == "" {
		return "", false
	}

	// mod declarations anchor at the declaring file's directory.
	if name, ok := strings.CutPrefix(specifier, "mod "); ok {
		base := resolveRelative(fromPath, name)
		return tryCandidates(base, p.Extensions(), rsIndexNames, existing)
	}

	segs := strings.Split(specifier, "::")
	switch segs[0] {
	case "crate":
		rel := strings.Join(segs[1:], "/")
		if resolved, ok := p.tryModulePath("src/"+rel, existing); ok {
			return resolved, true
		}
		return p.tryModulePath(rel, existing)
	case "super":
		up := 0
		for up < len(segs) && segs[up] == "super" {
			up++
		}
		dir := pathDir(fromPath)
		for i := 0; i < up; i++ {
			dir = pathDir(dir)
		}
		return p.tryModulePath(joinNonEmpty(dir, strings.Join(segs[up:], "/")), existing)
	case "self":
		dir := pathDir(fromPath)
		return p.tryModulePath(joinNonEmpty(dir, strings.Join(segs[1:], "/")), existing)
	default:
		// External crate.
		return "", false
	}
}

// tryModulePath tries the full module path, then its parent: the last
// segment of a use path is often an item inside the parent module file.
func (p *rsProvider) tryModulePath(base string, existing PathSet) (string, bool) {
	if resolved, ok := tryCandidates(base, p.Extensions(), rsIndexNames, existing); ok {
		return resolved, true
	}
	if parent := pathDir(base); parent != "" && parent != "src" {
		return tryCandidates(parent, p.Extensions(), rsIndexNames, existing)
	}
	return "", false
}
