package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for architecture loading:
// - Missing file returns nil model, nil error
// - A valid model parses layers, allow lists, and boundaries
// - An empty-but-present file still returns a non-nil model
// - Malformed YAML is treated as absent, not an error

func writeArchitecture(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".reposcope")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "architecture.yml"), []byte(content), 0o644))
	return root
}

func TestLoadArchitecture_Missing(t *testing.T) {
	t.Parallel()

	model, err := LoadArchitecture(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestLoadArchitecture_Valid(t *testing.T) {
	t.Parallel()

	root := writeArchitecture(t, `
layers:
  - name: Modules
    path_globs:
      - "src/modules/**"
    allowed_dependencies:
      - Core
  - name: CLI
    path_globs:
      - "src/cli/**"
boundaries:
  - from_layer: Modules
    to_layer: CLI
    allowed: false
    reason: modules stay presentation-free
`)

	model, err := LoadArchitecture(root)
	require.NoError(t, err)
	require.NotNil(t, model)

	require.Len(t, model.Layers, 2)
	assert.Equal(t, "Modules", model.Layers[0].Name)
	assert.Equal(t, []string{"src/modules/**"}, model.Layers[0].PathGlobs)
	assert.Equal(t, []string{"Core"}, model.Layers[0].AllowedDependencyLayerNames)

	require.Len(t, model.Boundaries, 1)
	assert.False(t, model.Boundaries[0].Allowed)
	assert.Equal(t, "modules stay presentation-free", model.Boundaries[0].Reason)
}

func TestLoadArchitecture_EmptyFileIsConfigured(t *testing.T) {
	t.Parallel()

	root := writeArchitecture(t, "layers: []\nboundaries: []\n")

	model, err := LoadArchitecture(root)
	require.NoError(t, err)
	require.NotNil(t, model, "present-but-empty is distinct from absent")
	assert.Empty(t, model.Layers)
	assert.Empty(t, model.Boundaries)
}

func TestLoadArchitecture_Malformed(t *testing.T) {
	t.Parallel()

	root := writeArchitecture(t, "layers: [unclosed\n")

	model, err := LoadArchitecture(root)
	require.NoError(t, err)
	assert.Nil(t, model, "malformed model is treated as absent")
}
