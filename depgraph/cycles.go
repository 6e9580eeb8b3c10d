package depgraph

import (
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// markCycles flags edges whose endpoints sit in the same strongly connected component
// and returns each multi-node component as a cycle.
func markCycles(edges []GraphEdge) []Cycle {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())
	for _, e := range edges {
		_ = g.AddVertex(e.Source)
		_ = g.AddVertex(e.Target)
		_ = g.AddEdge(e.Source, e.Target)
	}

	components, err := graphlib.StronglyConnectedComponents(g)
	if err != nil {
		return []Cycle{}
	}

	componentOf := make(map[string]int)
	cycles := []Cycle{}
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		path := append([]string(nil), component...)
		sort.Strings(path)
		cycles = append(cycles, Cycle{Path: path})
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Path[0] < cycles[j].Path[0] })

	for i, c := range cycles {
		for _, id := range c.Path {
			componentOf[id] = i + 1
		}
	}
	for i := range edges {
		c := componentOf[edges[i].Source]
		edges[i].InCycle = c != 0 && c == componentOf[edges[i].Target]
	}

	return cycles
}
