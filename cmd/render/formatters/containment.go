package formatters

import "github.com/LegacyCodeHQ/chronograph/depgraph"

// containment groups nodes under their containers, keeping the result's node order.
type containment struct {
	roots    []depgraph.GraphNode
	children map[string][]depgraph.GraphNode
}

func newContainment(nodes []depgraph.GraphNode) containment {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	c := containment{children: make(map[string][]depgraph.GraphNode)}
	for _, n := range nodes {
		if n.Parent == "" || !present[n.Parent] {
			c.roots = append(c.roots, n)
			continue
		}
		c.children[n.Parent] = append(c.children[n.Parent], n)
	}
	return c
}
