package depgraph

// FilterBetween narrows a result to the nodes lying on any directed path between the given
// visible node ids, in either direction, plus the containers holding them.
// Ids that are not leaf nodes of the result are skipped. With fewer than two usable ids
// the result keeps just those nodes and their containers.
func FilterBetween(result Result, ids []string) Result {
	leaves := make(map[string]bool, len(result.Nodes))
	for _, n := range result.Nodes {
		if n.IsLeaf {
			leaves[n.ID] = true
		}
	}

	var targets []string
	for _, id := range ids {
		if leaves[id] {
			targets = append(targets, id)
		}
	}

	nodesToKeep := make(map[string]bool)
	for _, id := range targets {
		nodesToKeep[id] = true
	}

	if len(targets) >= 2 {
		forward, reverse := buildAdjacencyLists(result.Edges)
		for i := 0; i < len(targets); i++ {
			for j := i + 1; j < len(targets); j++ {
				for node := range findDirectedPathNodes(forward, reverse, targets[i], targets[j]) {
					nodesToKeep[node] = true
				}
				for node := range findDirectedPathNodes(forward, reverse, targets[j], targets[i]) {
					nodesToKeep[node] = true
				}
			}
		}
	}

	return extractSubgraph(result, nodesToKeep)
}

// buildAdjacencyLists creates forward and reverse adjacency lists from the edges.
// Forward: A→B means forward[A] contains B
// Reverse: A→B means reverse[B] contains A
func buildAdjacencyLists(edges []GraphEdge) (forward, reverse map[string][]string) {
	forward = make(map[string][]string)
	reverse = make(map[string][]string)
	for _, e := range edges {
		forward[e.Source] = append(forward[e.Source], e.Target)
		reverse[e.Target] = append(reverse[e.Target], e.Source)
	}
	return forward, reverse
}

// findDirectedPathNodes finds all nodes on any directed path from source to target:
// reachable from source and able to reach target.
func findDirectedPathNodes(forward, reverse map[string][]string, source, target string) map[string]bool {
	result := make(map[string]bool)

	reachableFromSource := bfsReachable(forward, source)
	canReachTarget := bfsReachable(reverse, target)

	for node := range reachableFromSource {
		if canReachTarget[node] {
			result[node] = true
		}
	}
	return result
}

// bfsReachable returns all nodes reachable from source.
func bfsReachable(adjacency map[string][]string, source string) map[string]bool {
	reachable := map[string]bool{source: true}

	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return reachable
}

// extractSubgraph keeps the given leaves, every container above them, and the edges whose
// endpoints are both kept. Node and edge order is preserved.
func extractSubgraph(result Result, nodesToKeep map[string]bool) Result {
	parents := make(map[string]string, len(result.Nodes))
	for _, n := range result.Nodes {
		parents[n.ID] = n.Parent
	}

	keep := make(map[string]bool, len(nodesToKeep))
	for id := range nodesToKeep {
		for p := id; p != "" && !keep[p]; p = parents[p] {
			keep[p] = true
		}
	}

	filtered := Result{
		Nodes:       []GraphNode{},
		Edges:       []GraphEdge{},
		Diagnostics: result.Diagnostics,
	}
	for _, n := range result.Nodes {
		if keep[n.ID] {
			filtered.Nodes = append(filtered.Nodes, n)
		}
	}
	for _, e := range result.Edges {
		if nodesToKeep[e.Source] && nodesToKeep[e.Target] {
			filtered.Edges = append(filtered.Edges, e)
		}
	}
	filtered.Cycles = markCycles(filtered.Edges)
	return filtered
}
