package depgraph

import (
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// assembleContainers turns every expanded, included folder into a container and parents
// each node under its nearest container ancestor.
func (b *elementBuilder) assembleContainers() {
	containers := make(map[string]bool, len(b.visibility.Expanded))
	for id := range b.visibility.Expanded {
		if b.visibility.Included[id] {
			containers[id] = true
		}
	}

	ids := make([]string, 0, len(containers))
	for id := range containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n, ok := b.nodes[id]
		if !ok {
			n = &GraphNode{ID: id, Label: b.labelFor(id), Type: NodeTypeFolder}
			b.nodes[id] = n
			b.nodeOrder = append(b.nodeOrder, id)
		}
		n.Type = NodeTypeFolder
		n.IsLeaf = false
		n.IsExpanded = true
		n.Parent = nearestContainer(id, containers)
	}

	for _, id := range b.nodeOrder {
		n := b.nodes[id]
		if n.Parent == "" {
			n.Parent = nearestContainer(id, containers)
		}
	}
}

// nearestContainer returns the deepest strict ancestor of id that is a container, or "".
func nearestContainer(id string, containers map[string]bool) string {
	for p := parentPath(id); p != ""; p = parentPath(p) {
		if containers[p] {
			return p
		}
	}
	return ""
}

// orderedNodes returns containers first, parents before children, then leaves by id.
// Containment is checked for cycles while ordering; parents are always strict path
// ancestors, so a cycle here means a corrupted parent link and that link is dropped.
func (b *elementBuilder) orderedNodes() []GraphNode {
	containment := graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.PreventCycles())

	var leaves []string
	for _, id := range b.nodeOrder {
		n := b.nodes[id]
		if n.IsLeaf {
			leaves = append(leaves, id)
			continue
		}
		_ = containment.AddVertex(id)
	}

	for _, id := range b.nodeOrder {
		n := b.nodes[id]
		if n.IsLeaf || n.Parent == "" {
			continue
		}
		if err := containment.AddEdge(n.Parent, id); err != nil {
			n.Parent = ""
		}
	}

	containers, err := graphlib.StableTopologicalSort(containment, func(a, b string) bool { return a < b })
	if err != nil {
		containers = containers[:0]
		for _, id := range b.nodeOrder {
			if !b.nodes[id].IsLeaf {
				containers = append(containers, id)
			}
		}
		sort.Slice(containers, func(i, j int) bool {
			return pathDepth(containers[i]) < pathDepth(containers[j]) ||
				(pathDepth(containers[i]) == pathDepth(containers[j]) && containers[i] < containers[j])
		})
	}
	sort.Strings(leaves)

	nodes := make([]GraphNode, 0, len(b.nodeOrder))
	for _, id := range containers {
		nodes = append(nodes, *b.nodes[id])
	}
	for _, id := range leaves {
		nodes = append(nodes, *b.nodes[id])
	}
	return nodes
}
