package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Java provider:
// - Plain, static and wildcard imports are extracted
// - Public types are exports; methods and fields become symbols
// - Fully qualified names resolve from the repo root and common source roots

func TestJava_ExtractImports(t *testing.T) {
	t.Parallel()

	p := NewJavaProvider()
	src := `package com.acme.app;

import java.util.List;
import static org.junit.Assert.assertTrue;
import com.acme.util.*;
`
	imports := p.ExtractImports(src)
	require.Len(t, imports, 3)

	assert.Equal(t, "java.util.List", imports[0].Source)
	assert.Equal(t, []string{"List"}, imports[0].Specifiers)

	assert.Equal(t, []string{"assertTrue"}, imports[1].Specifiers)

	assert.Equal(t, "com.acme.util", imports[2].Source)
	assert.Equal(t, []string{"*"}, imports[2].Specifiers)
	assert.True(t, imports[2].IsNamespace)
}

func TestJava_SymbolsAndExports(t *testing.T) {
	t.Parallel()

	p := NewJavaProvider()
	src := `public class Engine {
    private final String name;

    public void run() {
    }
}

interface internalHook {
}
`
	symbols := p.ExtractSymbols("src/main/java/com/acme/Engine.java", src)
	require.Len(t, symbols, 4)
	assert.Equal(t, "Engine", symbols[0].Name)
	assert.True(t, symbols[0].Exported)
	assert.Equal(t, KindProperty, symbols[1].Kind)
	assert.Equal(t, "run", symbols[2].Name)
	assert.Equal(t, KindMethod, symbols[2].Kind)
	assert.Equal(t, KindInterface, symbols[3].Kind)
	assert.False(t, symbols[3].Exported)

	exports := p.ExtractExports(src)
	require.Len(t, exports, 1, "only public types are exported")
	assert.Equal(t, "Engine", exports[0].Name)
}

func TestJava_ResolveImportPath(t *testing.T) {
	t.Parallel()

	p := NewJavaProvider()
	existing := NewPathSet([]string{
		"src/main/java/com/acme/Engine.java",
		"com/acme/util/Strings.java",
	})

	resolved, ok := p.ResolveImportPath("src/main/java/com/acme/App.java", "com.acme.Engine", existing)
	require.True(t, ok)
	assert.Equal(t, "src/main/java/com/acme/Engine.java", resolved)

	resolved, ok = p.ResolveImportPath("com/acme/App.java", "com.acme.util.Strings", existing)
	require.True(t, ok)
	assert.Equal(t, "com/acme/util/Strings.java", resolved)

	_, ok = p.ResolveImportPath("com/acme/App.java", "java.util.List", existing)
	assert.False(t, ok, "JDK import must not resolve")
}
