// Package impact computes the blast radius of a change set: directly
// changed symbols, transitively affected modules, public API change
// classification, architectural boundary violations, and an aggregate
// risk score.
package impact

import (
	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/lang"
)

// DiffStatus is the per-file change status of a diff.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
	DiffDeleted  DiffStatus = "deleted"
)

// Hunk is one contiguous change region within a diff file. Lines carry
// their unified-diff prefix (+, -, or space).
type Hunk struct {
	OldStart int      `json:"old_start"`
	OldLines int      `json:"old_lines"`
	NewStart int      `json:"new_start"`
	NewLines int      `json:"new_lines"`
	Lines    []string `json:"lines,omitempty"`
}

// DiffFile is one changed file in a diff.
type DiffFile struct {
	Path      string     `json:"path"`
	Status    DiffStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	Hunks     []Hunk     `json:"hunks,omitempty"`
}

// DiffRecord is the change set supplied by the git collaborator. A nil or
// empty record analyzes to an empty result.
type DiffRecord struct {
	Files []DiffFile `json:"files"`
}

// Layer maps a set of path globs to a named architectural layer and lists
// the layers it may depend on. Globs are tested in declaration order; the
// first match wins.
type Layer struct {
	Name                        string   `json:"name" yaml:"name"`
	PathGlobs                   []string `json:"path_globs" yaml:"path_globs"`
	AllowedDependencyLayerNames []string `json:"allowed_dependencies" yaml:"allowed_dependencies"`
}

// Boundary is an explicit per-pair override of the layer allow lists.
type Boundary struct {
	FromLayer string `json:"from_layer" yaml:"from_layer"`
	ToLayer   string `json:"to_layer" yaml:"to_layer"`
	Allowed   bool   `json:"allowed" yaml:"allowed"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ArchitectureModel describes the intended layering of a repo. A model that
// has been set but contains no layers or boundaries is distinct from no
// model at all: an empty model suppresses the fallback heuristic.
type ArchitectureModel struct {
	Layers     []Layer    `json:"layers" yaml:"layers"`
	Boundaries []Boundary `json:"boundaries" yaml:"boundaries"`
}

// ChangeKind classifies how a directly-changed symbol changed.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// ChangedSymbol is one symbol touched by the diff.
type ChangedSymbol struct {
	Symbol lang.Symbol `json:"symbol"`
	Change ChangeKind  `json:"change"`
}

// APIChangeKind classifies a public API change. Anything that is neither a
// disappearance nor a new appearance is modified, which is non-breaking by
// default since signature comparison is out of scope for lexical extraction.
type APIChangeKind string

const (
	APIBreaking APIChangeKind = "breaking"
	APIAdditive APIChangeKind = "additive"
	APIModified APIChangeKind = "modified"
)

// PublicAPIChange is one exported-surface change in a directly-changed file.
type PublicAPIChange struct {
	FilePath string        `json:"file_path"`
	Name     string        `json:"name"`
	Kind     APIChangeKind `json:"kind"`
}

// Severity grades a boundary violation. Configured-model violations are
// errors; fallback-heuristic findings are warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// BoundaryViolation is one import edge that crosses a forbidden boundary.
type BoundaryViolation struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	FromLayer string   `json:"from_layer,omitempty"`
	ToLayer   string   `json:"to_layer,omitempty"`
	Severity  Severity `json:"severity"`
	Reason    string   `json:"reason"`
}

// RiskLevel is the fixed classification of an aggregate risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Result is produced fresh per Analyze call and never persisted.
type Result struct {
	DirectlyChanged    []ChangedSymbol      `json:"directly_changed"`
	AffectedModules    []depgraph.Affected  `json:"affected_modules"`
	PublicAPIChanges   []PublicAPIChange    `json:"public_api_changes"`
	BoundaryViolations []BoundaryViolation  `json:"boundary_violations"`
	RiskScore          float64              `json:"risk_score"`
	RiskLevel          RiskLevel            `json:"risk_level"`
}
