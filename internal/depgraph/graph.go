package depgraph

import (
	"sort"

	graphlib "github.com/dominikbraun/graph"

	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
)

// Graph is the resolved dependency graph over one completed index. It is
// immutable after Build and safe for concurrent reads.
type Graph struct {
	nodes     []Node
	pathIndex map[string]int
	edges     []Edge
	resolved  []ResolvedImport

	// Directed adjacency keyed by path. Node lookups read through it and
	// edge dedup relies on its AddEdge semantics.
	adjacency graphlib.Graph[string, *Node]
}

// Build resolves every import specifier in files against the full indexed
// path set and constructs the graph. The complete file set must be known
// before calling: resolution tests candidate paths against all of it.
// Specifiers that do not resolve to an indexed file create no edge and stay
// visible only in the raw ImportSpec lists.
func Build(files map[string]*indexer.FileRecord, registry *lang.Registry) *Graph {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	// Node order is sorted so repeated builds over the same tree are
	// byte-identical.
	sort.Strings(paths)

	g := &Graph{
		nodes:     make([]Node, len(paths)),
		pathIndex: make(map[string]int, len(paths)),
		adjacency: graphlib.New(func(n *Node) string { return n.Path }, graphlib.Directed()),
	}
	for i, p := range paths {
		g.nodes[i] = Node{Path: p}
		g.pathIndex[p] = i
		_ = g.adjacency.AddVertex(&g.nodes[i])
	}

	existing := lang.NewPathSet(paths)

	for _, fromPath := range paths {
		record := files[fromPath]
		provider := registry.ForPath(fromPath)
		if provider == nil {
			continue
		}

		fromIdx := g.pathIndex[fromPath]

		for _, spec := range record.Imports {
			// Self-imports stay: a file importing itself is a valid
			// one-node cycle and must be reported, not suppressed.
			toPath, ok := provider.ResolveImportPath(fromPath, spec.Source, existing)
			if !ok {
				continue
			}

			g.resolved = append(g.resolved, ResolvedImport{
				FromPath: fromPath,
				ToPath:   toPath,
				Spec:     spec,
			})

			// One edge per (from, to) pair; a second import of the same
			// target refines nothing and AddEdge reports it as existing.
			if err := g.adjacency.AddEdge(fromPath, toPath); err != nil {
				continue
			}

			kind := EdgeStatic
			if spec.TypeOnly {
				kind = EdgeTypeOnly
			}
			toIdx := g.pathIndex[toPath]

			g.edges = append(g.edges, Edge{From: fromPath, To: toPath, Kind: kind})
			g.nodes[fromIdx].Imports = append(g.nodes[fromIdx].Imports, toIdx)
			g.nodes[toIdx].ImportedBy = append(g.nodes[toIdx].ImportedBy, fromIdx)
		}
	}

	// Neighbor lists sorted for deterministic traversal order.
	for i := range g.nodes {
		sort.Ints(g.nodes[i].Imports)
		sort.Ints(g.nodes[i].ImportedBy)
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].From != g.edges[j].From {
			return g.edges[i].From < g.edges[j].From
		}
		return g.edges[i].To < g.edges[j].To
	})

	return g
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of resolved edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns all resolved edges in deterministic order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// ResolvedImports returns every (specifier, target) resolution made during
// Build, in build order.
func (g *Graph) ResolvedImports() []ResolvedImport {
	return g.resolved
}

// Node returns the node for path, or nil if the path is not in the graph.
func (g *Graph) Node(path string) *Node {
	node, err := g.adjacency.Vertex(path)
	if err != nil {
		return nil
	}
	return node
}

// ImportsOf returns the paths that path directly imports.
func (g *Graph) ImportsOf(path string) []string {
	return g.neighborPaths(path, func(n *Node) []int { return n.Imports })
}

// ImportersOf returns the paths that directly import path.
func (g *Graph) ImportersOf(path string) []string {
	return g.neighborPaths(path, func(n *Node) []int { return n.ImportedBy })
}

func (g *Graph) neighborPaths(path string, pick func(*Node) []int) []string {
	node := g.Node(path)
	if node == nil {
		return nil
	}
	idxs := pick(node)
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.nodes[idx].Path
	}
	return out
}

// DumpGraph returns the consumer-facing snapshot: sorted nodes with their
// neighbor path lists plus the sorted edge set.
func (g *Graph) DumpGraph() *Dump {
	d := &Dump{
		Nodes: make([]DumpNode, len(g.nodes)),
		Edges: g.edges,
	}
	for i, n := range g.nodes {
		dn := DumpNode{
			Path:       n.Path,
			Imports:    make([]string, len(n.Imports)),
			ImportedBy: make([]string, len(n.ImportedBy)),
		}
		for j, idx := range n.Imports {
			dn.Imports[j] = g.nodes[idx].Path
		}
		for j, idx := range n.ImportedBy {
			dn.ImportedBy[j] = g.nodes[idx].Path
		}
		d.Nodes[i] = dn
	}
	return d
}
