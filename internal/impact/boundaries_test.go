package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for boundary checking:
// - No model: changed module file importing a cli path yields one warning
// - Configured model with a disallowed pair yields one error with endpoints
// - An empty configured model suppresses the heuristic entirely
// - Boundary overrides with allowed: true permit an otherwise forbidden pair
// - Edges from unchanged files are never checked

func layeredSources() map[string]string {
	return map[string]string{
		"src/modules/x.ts": "import { y } from '../cli/y';\n",
		"src/cli/y.ts":     "export const y = 1;\n",
	}
}

func modulesCLIModel() *ArchitectureModel {
	return &ArchitectureModel{
		Layers: []Layer{
			{Name: "Modules", PathGlobs: []string{"src/modules/**"}},
			{Name: "CLI", PathGlobs: []string{"src/cli/**"}},
		},
	}
}

func TestBoundaries_FallbackHeuristic(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/modules/x.ts", Status: DiffModified},
	}})

	require.Len(t, result.BoundaryViolations, 1)
	v := result.BoundaryViolations[0]
	assert.Equal(t, SeverityWarning, v.Severity)
	assert.Equal(t, "src/modules/x.ts", v.From)
	assert.Equal(t, "src/cli/y.ts", v.To)
}

func TestBoundaries_ConfiguredModel(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())
	a.SetArchitecture(modulesCLIModel())

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/modules/x.ts", Status: DiffModified},
	}})

	require.Len(t, result.BoundaryViolations, 1)
	v := result.BoundaryViolations[0]
	assert.Equal(t, SeverityError, v.Severity)
	assert.Equal(t, "src/modules/x.ts", v.From)
	assert.Equal(t, "src/cli/y.ts", v.To)
	assert.Equal(t, "Modules", v.FromLayer)
	assert.Equal(t, "CLI", v.ToLayer)
}

func TestBoundaries_EmptyModelSuppressesHeuristic(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())
	a.SetArchitecture(&ArchitectureModel{})

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/modules/x.ts", Status: DiffModified},
	}})

	assert.Empty(t, result.BoundaryViolations,
		"configured-but-empty model disables the fallback")
}

func TestBoundaries_AllowedByLayerList(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())
	model := modulesCLIModel()
	model.Layers[0].AllowedDependencyLayerNames = []string{"CLI"}
	a.SetArchitecture(model)

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/modules/x.ts", Status: DiffModified},
	}})

	assert.Empty(t, result.BoundaryViolations)
}

func TestBoundaries_ExplicitOverride(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())
	model := modulesCLIModel()
	model.Boundaries = []Boundary{
		{FromLayer: "Modules", ToLayer: "CLI", Allowed: true, Reason: "legacy entry point"},
	}
	a.SetArchitecture(model)

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/modules/x.ts", Status: DiffModified},
	}})

	assert.Empty(t, result.BoundaryViolations)
}

func TestBoundaries_UnchangedEdgesIgnored(t *testing.T) {
	t.Parallel()

	a := buildAnalyzer(t, layeredSources())
	a.SetArchitecture(modulesCLIModel())

	result := a.Analyze(&DiffRecord{Files: []DiffFile{
		{Path: "src/cli/y.ts", Status: DiffModified},
	}})

	assert.Empty(t, result.BoundaryViolations,
		"only edges whose source file changed are checked")
}
