package depgraph

import "fmt"

// Options configures a transform run. The zero value is ready to use.
type Options struct {
	// Normalizer canonicalizes dependency paths and tree-state keys. Defaults to DefaultPathNormalizer.
	Normalizer *PathNormalizer
	// Diagnostics receives non-fatal diagnostics as they are found. May be nil.
	Diagnostics DiagnosticsSink
}

// Transform builds the level-of-detail graph for one snapshot.
//
// Every dependency is attributed to the visible nodes representing its endpoints under ts;
// same-pair dependencies aggregate into one weighted edge. Expanded folders become containers.
// When diff is non-nil, edges carry a diff status and changed nodes and their containers
// are marked. Inputs are never modified and identical inputs give identical results.
func Transform(deps []Dependency, ts TreeState, diff *DependencyDiff, opts Options) Result {
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = DefaultPathNormalizer()
	}

	var diagnostics []Diagnostic
	report := func(d Diagnostic) {
		diagnostics = append(diagnostics, d)
		if opts.Diagnostics != nil {
			opts.Diagnostics.Report(d)
		}
	}

	b := newElementBuilder(ts, diff, normalizer, report)
	for _, dep := range deps {
		b.addDependency(dep)
	}

	b.assembleContainers()
	if diff != nil {
		b.propagateChanges()
	}

	nodes := b.orderedNodes()
	edges := make([]GraphEdge, 0, len(b.edgeOrder))
	for _, id := range b.edgeOrder {
		edges = append(edges, *b.edges[id])
	}
	cycles := markCycles(edges)

	if len(deps) > 0 && len(nodes) == 0 {
		report(Diagnostic{
			Kind: DiagnosticEmptyResult,
			Message: fmt.Sprintf("%d dependencies produced no visible nodes; check that the tree state covers the dependency paths",
				len(deps)),
		})
	}

	return Result{
		Nodes:       nodes,
		Edges:       edges,
		Cycles:      cycles,
		Diagnostics: diagnostics,
	}
}
