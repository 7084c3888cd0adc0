package depgraph

import "sort"

// DefaultMaxHops bounds blast-radius searches on large graphs.
const DefaultMaxHops = 5

// Reachable runs a multi-source breadth-first search seeded from the given
// paths, traversing imports and importedBy edges alike (blast radius is
// undirected). Seeds are distance 0 and excluded from the result; every
// reached node gets distance = parent distance + 1 and a reason naming the
// edge that was walked. Nodes beyond maxHops are not reported.
func (g *Graph) Reachable(seeds []string, maxHops int) []Affected {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	distance := make([]int, len(g.nodes))
	reason := make([]string, len(g.nodes))
	for i := range distance {
		distance[i] = -1
	}

	queue := make([]int, 0, len(seeds))
	for _, seed := range seeds {
		idx, ok := g.pathIndex[seed]
		if !ok {
			continue
		}
		if distance[idx] != -1 {
			continue // duplicate seed
		}
		distance[idx] = 0
		queue = append(queue, idx)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if distance[cur] >= maxHops {
			continue
		}

		for _, next := range g.nodes[cur].ImportedBy {
			if distance[next] == -1 {
				distance[next] = distance[cur] + 1
				reason[next] = "imports " + g.nodes[cur].Path
				queue = append(queue, next)
			}
		}
		for _, next := range g.nodes[cur].Imports {
			if distance[next] == -1 {
				distance[next] = distance[cur] + 1
				reason[next] = "imported by " + g.nodes[cur].Path
				queue = append(queue, next)
			}
		}
	}

	var affected []Affected
	for i, d := range distance {
		if d <= 0 {
			continue
		}
		affected = append(affected, Affected{
			Path:     g.nodes[i].Path,
			Distance: d,
			Reason:   reason[i],
		})
	}

	sort.Slice(affected, func(i, j int) bool {
		if affected[i].Distance != affected[j].Distance {
			return affected[i].Distance < affected[j].Distance
		}
		return affected[i].Path < affected[j].Path
	})
	return affected
}
