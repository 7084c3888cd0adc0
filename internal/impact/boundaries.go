package impact

import (
	"fmt"
	"log"
	"strings"

	"github.com/gobwas/glob"
)

// presentationSegments are path segments the fallback heuristic treats as
// CLI/presentation territory that lower-level modules should not import.
var presentationSegments = []string{"cli", "cmd", "ui", "presentation"}

// boundaryViolations checks every import edge originating in a changed file.
// With a configured model it maps both endpoints to layers and enforces the
// allow lists; without one it applies the built-in heuristic. The two modes
// never mix.
func (a *Analyzer) boundaryViolations(changedPaths []string) []BoundaryViolation {
	changed := make(map[string]bool, len(changedPaths))
	for _, p := range changedPaths {
		changed[p] = true
	}

	if a.arch != nil {
		return a.modelViolations(changed)
	}
	return a.heuristicViolations(changed)
}

func (a *Analyzer) modelViolations(changed map[string]bool) []BoundaryViolation {
	violations := []BoundaryViolation{}
	matchers := compileLayers(a.arch.Layers)

	for _, edge := range a.graph.Edges() {
		if !changed[edge.From] {
			continue
		}
		fromLayer := matchers.layerFor(edge.From)
		toLayer := matchers.layerFor(edge.To)
		if fromLayer == nil || toLayer == nil || fromLayer.Name == toLayer.Name {
			continue
		}
		if a.dependencyAllowed(fromLayer, toLayer.Name) {
			continue
		}
		violations = append(violations, BoundaryViolation{
			From:      edge.From,
			To:        edge.To,
			FromLayer: fromLayer.Name,
			ToLayer:   toLayer.Name,
			Severity:  SeverityError,
			Reason:    a.boundaryReason(fromLayer.Name, toLayer.Name),
		})
	}
	return violations
}

// dependencyAllowed consults the layer's allow list, then explicit Boundary
// overrides. An override with allowed: true permits a pair the allow list
// forbids.
func (a *Analyzer) dependencyAllowed(from *Layer, toName string) bool {
	for _, name := range from.AllowedDependencyLayerNames {
		if name == toName {
			return true
		}
	}
	for _, b := range a.arch.Boundaries {
		if b.FromLayer == from.Name && b.ToLayer == toName {
			return b.Allowed
		}
	}
	return false
}

func (a *Analyzer) boundaryReason(fromName, toName string) string {
	for _, b := range a.arch.Boundaries {
		if b.FromLayer == fromName && b.ToLayer == toName && b.Reason != "" {
			return b.Reason
		}
	}
	return fmt.Sprintf("layer %s may not depend on layer %s", fromName, toName)
}

// heuristicViolations flags changed non-presentation files that import from
// a CLI/presentation-style path. This is the only check applied when no
// architecture model was ever configured.
func (a *Analyzer) heuristicViolations(changed map[string]bool) []BoundaryViolation {
	violations := []BoundaryViolation{}
	for _, edge := range a.graph.Edges() {
		if !changed[edge.From] {
			continue
		}
		if hasPresentationSegment(edge.From) || !hasPresentationSegment(edge.To) {
			continue
		}
		violations = append(violations, BoundaryViolation{
			From:     edge.From,
			To:       edge.To,
			Severity: SeverityWarning,
			Reason:   fmt.Sprintf("%s imports from presentation path %s", edge.From, edge.To),
		})
	}
	return violations
}

func hasPresentationSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		for _, p := range presentationSegments {
			if seg == p {
				return true
			}
		}
	}
	return false
}

// layerMatcher pairs a layer with its compiled path globs.
type layerMatcher struct {
	layer *Layer
	globs []glob.Glob
}

type layerMatchers []layerMatcher

// compileLayers compiles every layer's globs. Invalid globs are logged and
// skipped so one bad pattern never disables the rest of the model.
func compileLayers(layers []Layer) layerMatchers {
	matchers := make(layerMatchers, 0, len(layers))
	for i := range layers {
		lm := layerMatcher{layer: &layers[i]}
		for _, pattern := range layers[i].PathGlobs {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				log.Printf("Warning: invalid layer glob %q: %v", pattern, err)
				continue
			}
			lm.globs = append(lm.globs, g)
		}
		matchers = append(matchers, lm)
	}
	return matchers
}

// layerFor returns the first layer whose globs match path, in declaration
// order, or nil when no layer claims it.
func (m layerMatchers) layerFor(path string) *Layer {
	for _, lm := range m {
		for _, g := range lm.globs {
			if g.Match(path) {
				return lm.layer
			}
		}
	}
	return nil
}
