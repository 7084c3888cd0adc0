package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for DetectCycles:
// - Acyclic graphs report no cycles
// - A two-file mutual import is reported as exactly one cycle containing both
// - A self-import is a one-node cycle
// - Rotated traversals of the same cycle dedupe to one entry
// - A longer cycle reports every member

func TestDetectCycles_Acyclic(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, map[string]string{
		"src/a.ts": "import { b } from './b';\n",
		"src/b.ts": "import { c } from './c';\nexport const b = 1;\n",
		"src/c.ts": "export const c = 1;\n",
	})

	assert.Empty(t, g.DetectCycles())
}

func TestDetectCycles_MutualImport(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, map[string]string{
		"src/a.ts": "import { b } from './b';\nexport const a = 1;\n",
		"src/b.ts": "import { a } from './a';\nexport const b = 1;\n",
	})

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1, "mutual import is one cycle, not two")
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, cycles[0])
}

func TestDetectCycles_SelfImport(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, map[string]string{
		"src/a.ts": "import { a } from './a';\nexport const a = 1;\n",
	})

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"src/a.ts"}, cycles[0])
}

func TestDetectCycles_ThreeNode(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, map[string]string{
		"src/a.ts": "import { b } from './b';\nexport const a = 1;\n",
		"src/b.ts": "import { c } from './c';\nexport const b = 1;\n",
		"src/c.ts": "import { a } from './a';\nexport const c = 1;\n",
	})

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts", "src/c.ts"}, cycles[0])
}

func TestDetectCycles_DisjointCycles(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, map[string]string{
		"src/a.ts": "import { b } from './b';\nexport const a = 1;\n",
		"src/b.ts": "import { a } from './a';\nexport const b = 1;\n",
		"src/c.ts": "import { d } from './d';\nexport const c = 1;\n",
		"src/d.ts": "import { c } from './c';\nexport const d = 1;\n",
	})

	cycles := g.DetectCycles()
	require.Len(t, cycles, 2)
}
