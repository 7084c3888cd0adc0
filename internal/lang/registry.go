package lang

import (
	"sort"
	"strings"
)

// IgnorePatterns is the fixed ignore list applied to every scan regardless
// of language: dependency directories, build output, VCS metadata.
var IgnorePatterns = []string{
	"node_modules/**",
	"vendor/**",
	"bower_components/**",
	".git/**",
	".hg/**",
	".svn/**",
	"dist/**",
	"build/**",
	"out/**",
	"target/**",
	"__pycache__/**",
	".venv/**",
	"venv/**",
	".reposcope/**",
	"*.min.js",
	"*.pyc",
}

// Registry maps file extensions to language providers. It is built once and
// immutable afterwards; construct it explicitly and pass it into the
// indexer rather than reaching for package-level state.
type Registry struct {
	providers   []Provider
	byExtension map[string]Provider
}

// NewRegistry builds a registry with every supported language provider.
// Adding a language means adding one provider and one entry here.
func NewRegistry() *Registry {
	return newRegistry(
		NewTypeScriptProvider(),
		NewPythonProvider(),
		NewRubyProvider(),
		NewJavaProvider(),
		NewGoProvider(),
		NewRustProvider(),
	)
}

func newRegistry(providers ...Provider) *Registry {
	r := &Registry{
		providers:   providers,
		byExtension: make(map[string]Provider),
	}
	for _, p := range providers {
		for _, ext := range p.Extensions() {
			r.byExtension[ext] = p
		}
	}
	return r
}

// ForExtension returns the provider handling ext (with leading dot), or nil.
func (r *Registry) ForExtension(ext string) Provider {
	return r.byExtension[strings.ToLower(ext)]
}

// ForPath returns the provider handling the given file path, or nil.
func (r *Registry) ForPath(path string) Provider {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return nil
	}
	return r.ForExtension(path[idx:])
}

// Providers returns all registered providers.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// DiscoveryPatterns returns the sorted union of every provider's discovery
// patterns.
func (r *Registry) DiscoveryPatterns() []string {
	seen := make(map[string]struct{})
	var patterns []string
	for _, p := range r.providers {
		for _, pat := range p.DiscoveryPatterns() {
			if _, ok := seen[pat]; ok {
				continue
			}
			seen[pat] = struct{}{}
			patterns = append(patterns, pat)
		}
	}
	sort.Strings(patterns)
	return patterns
}
