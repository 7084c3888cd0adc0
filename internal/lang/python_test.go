package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Python provider:
// - Plain, aliased, from-import and wildcard imports are extracted
// - Top-level defs/classes/assignments without underscore are exports
// - Indented defs are methods
// - Dotted module paths resolve to files and packages (__init__.py)
// - Relative imports climb one level per extra leading dot

func TestPython_ExtractImports(t *testing.T) {
	t.Parallel()

	p := NewPythonProvider()
	src := `import os
import numpy as np
from pkg.mod import parse, dump as d
from . import sibling
from ..core import engine
from x import *
`
	imports := p.ExtractImports(src)
	require.Len(t, imports, 6)

	assert.Equal(t, "os", imports[0].Source)
	assert.True(t, imports[0].IsNamespace)
	assert.Equal(t, []string{"os"}, imports[0].Specifiers)

	assert.Equal(t, []string{"np"}, imports[1].Specifiers, "alias wins")

	assert.Equal(t, "pkg.mod", imports[2].Source)
	assert.Equal(t, []string{"parse", "d"}, imports[2].Specifiers)

	assert.Equal(t, ".", imports[3].Source)
	assert.Equal(t, "..core", imports[4].Source)

	assert.Equal(t, []string{"*"}, imports[5].Specifiers)
	assert.True(t, imports[5].IsNamespace)
}

func TestPython_ExtractExports(t *testing.T) {
	t.Parallel()

	p := NewPythonProvider()
	src := `VERSION = "1.0"
_private = 1

def handle(request):
    pass

def _hidden():
    pass

class Engine:
    def run(self):
        pass
`
	exports := p.ExtractExports(src)
	require.Len(t, exports, 3)
	assert.Equal(t, "VERSION", exports[0].Name)
	assert.Equal(t, "handle", exports[1].Name)
	assert.Equal(t, "Engine", exports[2].Name)
}

func TestPython_ExtractSymbols_MethodKind(t *testing.T) {
	t.Parallel()

	p := NewPythonProvider()
	src := `class Engine:
    def run(self):
        pass

def standalone():
    pass
`
	symbols := p.ExtractSymbols("pkg/engine.py", src)
	require.Len(t, symbols, 3)

	assert.Equal(t, KindClass, symbols[0].Kind)
	assert.Equal(t, KindMethod, symbols[1].Kind)
	assert.False(t, symbols[1].Exported, "methods are not top-level exports")
	assert.Equal(t, KindFunction, symbols[2].Kind)
	assert.True(t, symbols[2].Exported)
}

func TestPython_ResolveImportPath(t *testing.T) {
	t.Parallel()

	p := NewPythonProvider()
	existing := NewPathSet([]string{
		"pkg/__init__.py",
		"pkg/mod.py",
		"pkg/sub/__init__.py",
		"pkg/sub/leaf.py",
		"app.py",
	})

	resolved, ok := p.ResolveImportPath("app.py", "pkg.mod", existing)
	require.True(t, ok)
	assert.Equal(t, "pkg/mod.py", resolved)

	resolved, ok = p.ResolveImportPath("app.py", "pkg.sub", existing)
	require.True(t, ok)
	assert.Equal(t, "pkg/sub/__init__.py", resolved, "package resolves to __init__.py")

	resolved, ok = p.ResolveImportPath("pkg/sub/leaf.py", ".", existing)
	require.True(t, ok)
	assert.Equal(t, "pkg/sub/__init__.py", resolved)

	resolved, ok = p.ResolveImportPath("pkg/sub/leaf.py", "..mod", existing)
	require.True(t, ok)
	assert.Equal(t, "pkg/mod.py", resolved)

	_, ok = p.ResolveImportPath("app.py", "numpy", existing)
	assert.False(t, ok, "external package must not resolve")
}
