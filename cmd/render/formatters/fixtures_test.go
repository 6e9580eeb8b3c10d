package formatters

import "github.com/LegacyCodeHQ/chronograph/depgraph"

// nestedResult has one expanded folder, a top-level file and a collapsed folder.
func nestedResult() depgraph.Result {
	return depgraph.Result{
		Nodes: []depgraph.GraphNode{
			{ID: "lib", Label: "lib", Type: depgraph.NodeTypeFolder, IsExpanded: true},
			{ID: "lib/a.dart", Label: "a.dart", Type: depgraph.NodeTypeFile, Parent: "lib", IsLeaf: true},
			{ID: "lib/b.dart", Label: "b.dart", Type: depgraph.NodeTypeFile, Parent: "lib", IsLeaf: true},
			{ID: "main.dart", Label: "main.dart", Type: depgraph.NodeTypeFile, IsLeaf: true},
			{ID: "test", Label: "test", Type: depgraph.NodeTypeFolder, IsLeaf: true},
		},
		Edges: []depgraph.GraphEdge{
			{ID: "main.dart->lib/a.dart", Source: "main.dart", Target: "lib/a.dart", Weight: 1, RelationshipType: "imports"},
			{ID: "lib/a.dart->lib/b.dart", Source: "lib/a.dart", Target: "lib/b.dart", Weight: 3, RelationshipType: "imports"},
			{ID: "test->lib/a.dart", Source: "test", Target: "lib/a.dart", Weight: 2, RelationshipType: "imports"},
		},
		Cycles: []depgraph.Cycle{},
	}
}

// diffResult has a two-node cycle, an added edge and a removed edge.
func diffResult() depgraph.Result {
	return depgraph.Result{
		Nodes: []depgraph.GraphNode{
			{ID: "a.go", Label: "a.go", Type: depgraph.NodeTypeFile, IsLeaf: true, HasChanges: true},
			{ID: "b.go", Label: "b.go", Type: depgraph.NodeTypeFile, IsLeaf: true},
			{ID: "notes.md", Label: "notes.md", Type: depgraph.NodeTypeFile, IsLeaf: true},
		},
		Edges: []depgraph.GraphEdge{
			{ID: "a.go->b.go", Source: "a.go", Target: "b.go", Weight: 1, DiffStatus: depgraph.DiffStatusAdded, InCycle: true},
			{ID: "b.go->a.go", Source: "b.go", Target: "a.go", Weight: 1, DiffStatus: depgraph.DiffStatusUnchanged, InCycle: true},
			{ID: "notes.md->a.go", Source: "notes.md", Target: "a.go", Weight: 1, DiffStatus: depgraph.DiffStatusRemoved},
		},
		Cycles: []depgraph.Cycle{{Path: []string{"a.go", "b.go"}}},
	}
}
