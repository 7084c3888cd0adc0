package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Ruby provider:
// - require and require_relative are both extracted as imports
// - Classes, modules and constants are exports
// - def inside a class body is a method
// - require_relative resolves beside the file; require resolves via lib/

func TestRuby_ExtractImports(t *testing.T) {
	t.Parallel()

	p := NewRubyProvider()
	src := `require 'json'
require_relative 'engine'
require_relative '../lib/util'
`
	imports := p.ExtractImports(src)
	require.Len(t, imports, 3)
	assert.Equal(t, "json", imports[0].Source)
	assert.Equal(t, "engine", imports[1].Source)
	assert.Equal(t, "../lib/util", imports[2].Source)
}

func TestRuby_SymbolsAndExports(t *testing.T) {
	t.Parallel()

	p := NewRubyProvider()
	src := `VERSION = "1.0"

module Acme
  class Engine
    def run
    end
  end
end

def standalone
end
`
	symbols := p.ExtractSymbols("lib/acme/engine.rb", src)
	require.Len(t, symbols, 5)
	assert.Equal(t, KindVariable, symbols[0].Kind)
	assert.Equal(t, KindNamespace, symbols[1].Kind)
	assert.Equal(t, KindClass, symbols[2].Kind)
	assert.Equal(t, KindMethod, symbols[3].Kind)
	assert.Equal(t, KindFunction, symbols[4].Kind)

	exports := p.ExtractExports(src)
	require.Len(t, exports, 3, "VERSION, Acme, Engine")
}

func TestRuby_ResolveImportPath(t *testing.T) {
	t.Parallel()

	p := NewRubyProvider()
	existing := NewPathSet([]string{
		"lib/acme/engine.rb",
		"lib/acme/util.rb",
		"lib/acme.rb",
		"app.rb",
	})

	resolved, ok := p.ResolveImportPath("lib/acme/engine.rb", "util", existing)
	require.True(t, ok)
	assert.Equal(t, "lib/acme/util.rb", resolved)

	resolved, ok = p.ResolveImportPath("app.rb", "acme/engine", existing)
	require.True(t, ok)
	assert.Equal(t, "lib/acme/engine.rb", resolved, "require resolves via lib/")

	_, ok = p.ResolveImportPath("app.rb", "json", existing)
	assert.False(t, ok, "gem require must not resolve")
}
