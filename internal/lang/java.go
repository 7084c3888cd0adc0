package lang

import (
	"regexp"
	"strings"
)

// javaProvider extracts Java files. Import statements carry fully qualified
// class names; resolution maps com.foo.Bar onto com/foo/Bar.java from the
// repository root and from common source roots (src/main/java, src).
type javaProvider struct{}

// NewJavaProvider returns the Java provider.
func NewJavaProvider() Provider {
	return &javaProvider{}
}

var (
	javaImportRe = regexp.MustCompile(`^\s*import\s+(static\s+)?([\w.]+(?:\.\*)?)\s*;`)
	javaTypeRe   = regexp.MustCompile(`^(\s*)(?:public\s+|protected\s+|private\s+|abstract\s+|final\s+|static\s+)*(class|interface|enum|record)\s+(\w+)`)
	javaMethodRe = regexp.MustCompile(`^(\s+)(?:public\s+|protected\s+|private\s+|abstract\s+|final\s+|static\s+|synchronized\s+|native\s+)+[\w<>\[\],.\s]+?\s(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w.,\s]+)?\s*[{;]`)
	javaFieldRe  = regexp.MustCompile(`^(\s+)(?:public\s+|protected\s+|private\s+)?(?:static\s+)?(?:final\s+)?[\w<>\[\],.]+\s+(\w+)\s*[=;]`)
)

var javaSourceRoots = []string{"", "src/main/java/", "src/test/java/", "src/"}

func (p *javaProvider) ID() string { return "java" }

func (p *javaProvider) Extensions() []string { return []string{".java"} }

func (p *javaProvider) DiscoveryPatterns() []string { return []string{"**/*.java"} }

func (p *javaProvider) CommentDelimiters() []string { return []string{"//", "/*", "*/"} }

func (p *javaProvider) ControlFlowKeywords() []string {
	return []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"}
}

func (p *javaProvider) EntryPointHints() []string {
	return []string{"Main.java", "Application.java", "App.java"}
}

func (p *javaProvider) ExtractImports(text string) []ImportSpec {
	var imports []ImportSpec
	for i, line := range strings.Split(text, "\n") {
		m := javaImportRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		spec := ImportSpec{Source: m[2], Line: i + 1}
		if strings.HasSuffix(m[2], ".*") {
			spec.Source = strings.TrimSuffix(m[2], ".*")
			spec.Specifiers = []string{"*"}
			spec.IsNamespace = true
		} else {
			idx := strings.LastIndex(m[2], ".")
			spec.Specifiers = []string{m[2][idx+1:]}
		}
		imports = append(imports, spec)
	}
	return imports
}

func (p *javaProvider) ExtractExports(text string) []ExportSpec {
	var exports []ExportSpec
	for i, line := range strings.Split(text, "\n") {
		m := javaTypeRe.FindStringSubmatch(line)
		if m == nil || !strings.Contains(line, "public") {
			continue
		}
		exports = append(exports, ExportSpec{
			Name: m[3],
			Kind: javaKindFor(m[2]),
			Line: i + 1,
		})
	}
	return exports
}

func javaKindFor(keyword string) SymbolKind {
	switch keyword {
	case "interface":
		return KindInterface
	case "enum":
		return KindEnum
	default:
		return KindClass
	}
}

func (p *javaProvider) ExtractSymbols(filePath, text string) []Symbol {
	var symbols []Symbol
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "@") {
			continue
		}

		if m := javaTypeRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{
				Name: m[3], Kind: javaKindFor(m[2]), FilePath: filePath,
				Line: lineNo, Column: len(m[1]),
				Exported: strings.Contains(line, "public"),
			})
			continue
		}
		if m := javaMethodRe.FindStringSubmatch(line); m != nil {
			// Constructors and keywords slip through a lexical match; drop
			// the obvious ones.
			if m[2] == "if" || m[2] == "for" || m[2] == "while" || m[2] == "switch" || m[2] == "catch" {
				continue
			}
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindMethod, FilePath: filePath,
				Line: lineNo, Column: len(m[1]),
				Exported: strings.Contains(line, "public"),
			})
			continue
		}
		if m := javaFieldRe.FindStringSubmatch(line); m != nil && !strings.Contains(line, "(") {
			symbols = append(symbols, Symbol{
				Name: m[2], Kind: KindProperty, FilePath: filePath,
				Line: lineNo, Column: len(m[1]),
				Exported: strings.Contains(line, "public"),
			})
		}
	}
	return symbols
}

func (p *javaProvider) ResolveImportPath(fromPath, specifier string, existing PathSet) (string, bool) {
	if specifier == "" || !strings.Contains(specifier, ".") {
		return "", false
	}
	rel := strings.ReplaceAll(specifier, ".", "/")
	for _, root := range javaSourceRoots {
		if resolved, ok := tryCandidates(root+rel, p.Extensions(), nil, existing); ok {
			return resolved, true
		}
	}
	return "", false
}
