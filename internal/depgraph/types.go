// Package depgraph resolves raw import specifiers into a dependency graph
// between indexed files, and answers cycle and reachability queries over it.
//
// Nodes live in a flat arena addressed by integer index, with imports and
// importedBy kept as index lists; the directed adjacency is mirrored into a
// dominikbraun/graph structure for consumers that want standard traversals.
package depgraph

import "github.com/reposcope/reposcope/internal/lang"

// EdgeKind classifies a resolved dependency edge.
type EdgeKind string

const (
	// EdgeStatic is a regular code dependency.
	EdgeStatic EdgeKind = "static"
	// EdgeTypeOnly is a type-erasure import (TypeScript `import type`).
	EdgeTypeOnly EdgeKind = "type-only"
)

// Node is one file participating in the graph. Imports and ImportedBy hold
// arena indexes of neighbor nodes; every entry is a valid node index (no
// dangling edges by construction).
type Node struct {
	Path       string
	Imports    []int
	ImportedBy []int
}

// Edge is one resolved dependency between two indexed files.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// ResolvedImport ties a raw import specifier to the file it resolved to.
// Retained so fan-in queries can tell which specifiers reference a target.
type ResolvedImport struct {
	FromPath string
	ToPath   string
	Spec     lang.ImportSpec
}

// Affected is one node reached by a blast-radius search.
type Affected struct {
	Path     string `json:"path"`
	Distance int    `json:"distance"`
	Reason   string `json:"reason"`
}

// DumpNode is the consumer-facing shape of a node.
type DumpNode struct {
	Path       string   `json:"path"`
	Imports    []string `json:"imports"`
	ImportedBy []string `json:"imported_by"`
}

// Dump is a one-directional snapshot of the graph for external consumers.
type Dump struct {
	Nodes []DumpNode `json:"nodes"`
	Edges []Edge     `json:"edges"`
}
