package depgraph

import "sort"

// DetectCycles returns every distinct import cycle in the graph. The search
// is a path-based DFS from every node: when it revisits a node already on
// the current path it records the cyclic suffix. One-node (self-import) and
// two-node cycles are reported like any other. Cycles are deduplicated by
// canonical rotation and returned in deterministic order.
func (g *Graph) DetectCycles() [][]string {
	var cycles [][]string
	seen := make(map[string]struct{})

	onPath := make([]bool, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	path := make([]int, 0, len(g.nodes))

	var dfs func(int)
	dfs = func(idx int) {
		onPath[idx] = true
		path = append(path, idx)

		for _, next := range g.nodes[idx].Imports {
			if onPath[next] {
				// Truncate to the cyclic suffix starting at next.
				start := 0
				for i, p := range path {
					if p == next {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(path)-start)
				for _, p := range path[start:] {
					cycle = append(cycle, g.nodes[p].Path)
				}
				canon := canonicalCycle(cycle)
				key := cycleKey(canon)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					cycles = append(cycles, canon)
				}
				continue
			}
			if !visited[next] {
				dfs(next)
			}
		}

		path = path[:len(path)-1]
		onPath[idx] = false
		visited[idx] = true
	}

	for i := range g.nodes {
		if !visited[i] {
			dfs(i)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycleKey(cycles[i]) < cycleKey(cycles[j])
	})
	return cycles
}

// canonicalCycle rotates the cycle so its lexically smallest path comes
// first, making equal cycles found from different entry points comparable.
func canonicalCycle(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	min := 0
	for i, p := range cycle {
		if p < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}

func cycleKey(cycle []string) string {
	key := ""
	for _, p := range cycle {
		key += p + "\x00"
	}
	return key
}
