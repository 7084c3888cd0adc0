package impact

import (
	"sort"
	"strings"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
	"github.com/reposcope/reposcope/internal/symbols"
)

// Analyzer computes impact results over a completed index. It is read-only
// over the graph and symbol map and safe for concurrent Analyze calls; it
// must not outlive the index it was built from.
type Analyzer struct {
	files    map[string]*indexer.FileRecord
	graph    *depgraph.Graph
	symbols  *symbols.Map
	registry *lang.Registry
	arch     *ArchitectureModel
	maxHops  int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxHops bounds the blast-radius search. Values below 1 keep the
// default.
func WithMaxHops(hops int) Option {
	return func(a *Analyzer) {
		if hops >= 1 {
			a.maxHops = hops
		}
	}
}

// NewAnalyzer builds an analyzer over a completed index. No architecture
// model is set initially; the fallback boundary heuristic applies until
// SetArchitecture is called.
func NewAnalyzer(files map[string]*indexer.FileRecord, graph *depgraph.Graph, syms *symbols.Map, registry *lang.Registry, opts ...Option) *Analyzer {
	a := &Analyzer{
		files:    files,
		graph:    graph,
		symbols:  syms,
		registry: registry,
		maxHops:  depgraph.DefaultMaxHops,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetArchitecture installs an architecture model. A non-nil model, even with
// zero layers and boundaries, permanently disables the fallback heuristic.
// Passing nil is a no-op; "configured but empty" and "absent" stay distinct.
func (a *Analyzer) SetArchitecture(model *ArchitectureModel) {
	if model != nil {
		a.arch = model
	}
}

// Analyze computes the full impact of diff. A nil or empty diff produces an
// empty result. Files in the diff with no corresponding record are skipped
// per-item and never abort the analysis.
func (a *Analyzer) Analyze(diff *DiffRecord) *Result {
	result := &Result{
		DirectlyChanged:    []ChangedSymbol{},
		AffectedModules:    []depgraph.Affected{},
		PublicAPIChanges:   []PublicAPIChange{},
		BoundaryViolations: []BoundaryViolation{},
		RiskLevel:          RiskLow,
	}
	if diff == nil || len(diff.Files) == 0 {
		return result
	}

	changedPaths := make([]string, 0, len(diff.Files))
	for _, df := range diff.Files {
		changedPaths = append(changedPaths, df.Path)
	}

	result.DirectlyChanged = a.directlyChanged(diff)
	result.AffectedModules = a.graph.Reachable(changedPaths, a.maxHops)
	result.PublicAPIChanges = a.publicAPIChanges(diff)
	result.BoundaryViolations = a.boundaryViolations(changedPaths)
	result.RiskScore = a.riskScore(result)
	result.RiskLevel = ClassifyRisk(result.RiskScore)
	return result
}

// directlyChanged classifies each symbol in each changed file using the
// file's diff status plus hunk coverage of the symbol's declaration line.
func (a *Analyzer) directlyChanged(diff *DiffRecord) []ChangedSymbol {
	changed := []ChangedSymbol{}
	for _, df := range diff.Files {
		rec := a.files[df.Path]
		if rec == nil {
			// Deleted files (or files outside the index) have no current
			// record; their exports still surface as breaking API changes.
			continue
		}
		switch df.Status {
		case DiffAdded:
			for _, sym := range rec.Symbols {
				changed = append(changed, ChangedSymbol{Symbol: sym, Change: ChangeAdded})
			}
		case DiffDeleted:
			for _, sym := range rec.Symbols {
				changed = append(changed, ChangedSymbol{Symbol: sym, Change: ChangeRemoved})
			}
		default:
			for _, sym := range rec.Symbols {
				if hunksCoverLine(df.Hunks, sym.Line) {
					changed = append(changed, ChangedSymbol{Symbol: sym, Change: ChangeModified})
				}
			}
		}
	}
	return changed
}

// publicAPIChanges diffs the exported surface of each changed file. The
// pre-diff export set is reconstructed by running the file's provider over
// the removed hunk lines; the post-diff set over the added lines.
func (a *Analyzer) publicAPIChanges(diff *DiffRecord) []PublicAPIChange {
	changes := []PublicAPIChange{}
	for _, df := range diff.Files {
		provider := a.registry.ForPath(df.Path)
		if provider == nil {
			continue
		}

		removed := exportNames(provider.ExtractExports(hunkSide(df.Hunks, '-')))
		added := exportNames(provider.ExtractExports(hunkSide(df.Hunks, '+')))

		switch df.Status {
		case DiffAdded:
			if rec := a.files[df.Path]; rec != nil {
				for _, exp := range rec.Exports {
					changes = append(changes, PublicAPIChange{
						FilePath: df.Path, Name: exp.Name, Kind: APIAdditive,
					})
				}
			}
		case DiffDeleted:
			for name := range removed {
				changes = append(changes, PublicAPIChange{
					FilePath: df.Path, Name: name, Kind: APIBreaking,
				})
			}
		default:
			current := currentExportNames(a.files[df.Path])
			for name := range removed {
				if !current[name] {
					changes = append(changes, PublicAPIChange{
						FilePath: df.Path, Name: name, Kind: APIBreaking,
					})
				}
			}
			for name := range added {
				if removed[name] {
					changes = append(changes, PublicAPIChange{
						FilePath: df.Path, Name: name, Kind: APIModified,
					})
				} else {
					changes = append(changes, PublicAPIChange{
						FilePath: df.Path, Name: name, Kind: APIAdditive,
					})
				}
			}
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].FilePath != changes[j].FilePath {
			return changes[i].FilePath < changes[j].FilePath
		}
		return changes[i].Name < changes[j].Name
	})
	return changes
}

// hunkSide reassembles the text of one side of a diff: '-' yields the
// removed lines, '+' the added ones. Context lines belong to both sides.
func hunkSide(hunks []Hunk, side byte) string {
	var b strings.Builder
	for _, h := range hunks {
		for _, line := range h.Lines {
			if line == "" {
				continue
			}
			switch line[0] {
			case side, ' ':
				b.WriteString(line[1:])
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func hunksCoverLine(hunks []Hunk, line int) bool {
	if len(hunks) == 0 {
		return true
	}
	for _, h := range hunks {
		span := h.NewLines
		if span < 1 {
			span = 1
		}
		if line >= h.NewStart && line < h.NewStart+span {
			return true
		}
	}
	return false
}

func exportNames(exports []lang.ExportSpec) map[string]bool {
	names := make(map[string]bool, len(exports))
	for _, exp := range exports {
		names[exp.Name] = true
	}
	return names
}

func currentExportNames(rec *indexer.FileRecord) map[string]bool {
	if rec == nil {
		return map[string]bool{}
	}
	names := make(map[string]bool, len(rec.Exports))
	for _, exp := range rec.Exports {
		names[exp.Name] = true
	}
	return names
}
