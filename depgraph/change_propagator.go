package depgraph

// propagateChanges marks endpoints of added or removed edges and every container above them.
// Each walk runs all the way to the root; parents are strict path ancestors, so it terminates.
func (b *elementBuilder) propagateChanges() {
	for _, id := range b.edgeOrder {
		edge := b.edges[id]
		if !edge.DiffStatus.IsChange() {
			continue
		}
		b.markChanged(edge.Source)
		b.markChanged(edge.Target)
	}
}

func (b *elementBuilder) markChanged(id string) {
	for id != "" {
		n, ok := b.nodes[id]
		if !ok {
			return
		}
		n.HasChanges = true
		id = n.Parent
	}
}
