package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffDependencies(t *testing.T) {
	base := []depgraph.Dependency{
		dep("lib/main.dart", "lib/app.dart"),
		dep("lib/app.dart", "lib/legacy.dart"),
		{SourceFile: "lib/app.dart", TargetFile: "lib/base.dart", RelationshipType: "imports"},
	}
	head := []depgraph.Dependency{
		dep(`lib\main.dart`, "lib/app.dart"),
		dep("lib/app.dart", "lib/ui/home.dart"),
		{SourceFile: "lib/app.dart", TargetFile: "lib/base.dart", RelationshipType: "extends"},
	}

	diff := depgraph.DiffDependencies(base, head, nil)

	assert.Equal(t, []depgraph.Dependency{head[1], head[2]}, diff.Added)
	assert.Equal(t, []depgraph.Dependency{base[1], base[2]}, diff.Removed)
	assert.Equal(t, []depgraph.Dependency{head[0]}, diff.Unchanged)
}

func TestDiffDependencies_ListsEachKeyOnce(t *testing.T) {
	head := []depgraph.Dependency{
		dep("a.dart", "b.dart"),
		dep("a.dart", "b.dart"),
	}

	diff := depgraph.DiffDependencies(nil, head, nil)

	assert.Len(t, diff.Added, 1)
	assert.Empty(t, diff.Removed)
	assert.Empty(t, diff.Unchanged)
}

func TestWithRemoved(t *testing.T) {
	base := []depgraph.Dependency{dep("a.dart", "b.dart"), dep("a.dart", "c.dart")}
	head := []depgraph.Dependency{dep("a.dart", "b.dart")}
	diff := depgraph.DiffDependencies(base, head, nil)

	deps := depgraph.WithRemoved(head, diff)

	assert.Equal(t, []depgraph.Dependency{head[0], base[1]}, deps)
}

func TestDiffDependencies_FeedsTransform(t *testing.T) {
	ts := treeOf(
		file("a.dart", depgraph.Checked),
		file("b.dart", depgraph.Checked),
		file("c.dart", depgraph.Checked),
	)
	base := []depgraph.Dependency{dep("a.dart", "b.dart"), dep("a.dart", "c.dart")}
	head := []depgraph.Dependency{dep("a.dart", "b.dart"), dep("b.dart", "c.dart")}
	diff := depgraph.DiffDependencies(base, head, nil)

	result := depgraph.Transform(depgraph.WithRemoved(head, diff), ts, &diff, depgraph.Options{})

	statuses := map[string]depgraph.DiffStatus{}
	for _, e := range result.Edges {
		statuses[e.ID] = e.DiffStatus
	}
	assert.Equal(t, map[string]depgraph.DiffStatus{
		"a.dart->b.dart": depgraph.DiffStatusUnchanged,
		"b.dart->c.dart": depgraph.DiffStatusAdded,
		"a.dart->c.dart": depgraph.DiffStatusRemoved,
	}, statuses)
}

func TestDiffDependencies_UsesGivenNormalizer(t *testing.T) {
	normalizer, err := depgraph.NewPathNormalizer(`^ci/[^/]+/`)
	require.NoError(t, err)

	base := []depgraph.Dependency{dep("/ci/run1/lib/a.dart", "/ci/run1/lib/b.dart")}
	head := []depgraph.Dependency{dep("/ci/run2/lib/a.dart", "/ci/run2/lib/b.dart")}

	diff := depgraph.DiffDependencies(base, head, normalizer)

	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
	assert.Equal(t, head, diff.Unchanged)

	ts := treeOf(
		folder("lib", depgraph.Checked),
		file("lib/a.dart", depgraph.Checked),
		file("lib/b.dart", depgraph.Checked),
	)
	result := depgraph.Transform(depgraph.WithRemoved(head, diff), ts, &diff, depgraph.Options{Normalizer: normalizer})

	edge, ok := result.Edge("lib/a.dart", "lib/b.dart")
	require.True(t, ok)
	assert.Equal(t, 1, edge.Weight)
	assert.Equal(t, depgraph.DiffStatusUnchanged, edge.DiffStatus)
}
