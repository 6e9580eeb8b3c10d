package depgraph

import "fmt"

// elementBuilder accumulates nodes and edges for one transform run.
type elementBuilder struct {
	normalizer *PathNormalizer
	index      *pathIndex
	resolver   *DisplayLevelResolver
	visibility Visibility
	diff       diffIndex
	report     func(Diagnostic)

	nodes     map[string]*GraphNode
	nodeOrder []string
	edges     map[string]*GraphEdge
	edgeOrder []string
	mixed     map[string]bool
}

func newElementBuilder(ts TreeState, diff *DependencyDiff, normalizer *PathNormalizer, report func(Diagnostic)) *elementBuilder {
	index := newPathIndex(ts, normalizer)
	return &elementBuilder{
		normalizer: normalizer,
		index:      index,
		resolver:   &DisplayLevelResolver{index: index},
		visibility: index.visibility(),
		diff:       newDiffIndex(normalizer, diff),
		report:     report,
		nodes:      make(map[string]*GraphNode),
		edges:      make(map[string]*GraphEdge),
		mixed:      make(map[string]bool),
	}
}

// addDependency attributes one raw dependency to the visible nodes that represent its endpoints.
// Dependencies without a visible representation on both sides, and self-loops, are dropped.
func (b *elementBuilder) addDependency(dep Dependency) {
	sourcePath := b.normalizer.Normalize(dep.SourceFile)
	targetPath := b.normalizer.Normalize(dep.TargetFile)

	sourceID, ok := b.resolveVisible(sourcePath)
	if !ok {
		return
	}
	targetID, ok := b.resolveVisible(targetPath)
	if !ok {
		return
	}
	if sourceID == targetID {
		return
	}

	b.ensureNode(sourceID, sourcePath)
	b.ensureNode(targetID, targetPath)
	b.upsertEdge(sourceID, targetID, dep)
}

func (b *elementBuilder) resolveVisible(path string) (string, bool) {
	id, ok := b.resolver.Resolve(path)
	if !ok || !b.visibility.Included[id] {
		return "", false
	}
	return id, true
}

// ensureNode creates a leaf node for id if absent. The node is a file when it stands for
// originalPath itself and a folder when it stands for one of its ancestors.
func (b *elementBuilder) ensureNode(id, originalPath string) *GraphNode {
	if n, ok := b.nodes[id]; ok {
		return n
	}

	nodeType := NodeTypeFolder
	if id == originalPath {
		nodeType = NodeTypeFile
	}

	n := &GraphNode{
		ID:     id,
		Label:  b.labelFor(id),
		Type:   nodeType,
		IsLeaf: true,
	}
	b.nodes[id] = n
	b.nodeOrder = append(b.nodeOrder, id)
	return n
}

func (b *elementBuilder) labelFor(id string) string {
	if e, ok := b.index.lookup(id); ok {
		return e.label
	}
	return baseName(id)
}

func (b *elementBuilder) upsertEdge(sourceID, targetID string, dep Dependency) {
	id := EdgeID(sourceID, targetID)
	status := b.diff.status(b.normalizer, dep)

	edge, ok := b.edges[id]
	if !ok {
		b.edges[id] = &GraphEdge{
			ID:                   id,
			Source:               sourceID,
			Target:               targetID,
			Weight:               dep.EffectiveWeight(),
			RelationshipType:     dep.RelationshipType,
			OriginalDependencies: []Dependency{dep},
			DiffStatus:           status,
		}
		b.edgeOrder = append(b.edgeOrder, id)
		return
	}

	edge.Weight += dep.EffectiveWeight()
	edge.OriginalDependencies = append(edge.OriginalDependencies, dep)
	edge.DiffStatus = mergeDiffStatus(edge.DiffStatus, status)

	if dep.RelationshipType != edge.RelationshipType && !b.mixed[id] {
		b.mixed[id] = true
		b.report(Diagnostic{
			Kind: DiagnosticMixedRelationship,
			Message: fmt.Sprintf("edge %s aggregates %q and %q dependencies; reporting %q",
				id, edge.RelationshipType, dep.RelationshipType, edge.RelationshipType),
			EdgeID: id,
		})
	}
}

// mergeDiffStatus folds a contributing dependency's status into an edge's status.
// Added and removed win over unchanged; the first change seen is kept.
func mergeDiffStatus(current, incoming DiffStatus) DiffStatus {
	switch {
	case current.IsChange():
		return current
	case incoming.IsChange():
		return incoming
	case current == DiffStatusNone:
		return incoming
	default:
		return current
	}
}
