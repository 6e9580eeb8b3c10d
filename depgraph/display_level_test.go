package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/stretchr/testify/assert"
)

func TestResolveDisplayLevel_HalfCheckedStopsDescent(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.Checked),
		folder("lib/data", depgraph.HalfChecked),
		file("lib/main.dart", depgraph.Checked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/data/api/client.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib/data", id)
}

func TestResolveDisplayLevel_DeepestHalfCheckedWins(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.HalfChecked),
		folder("lib/data", depgraph.HalfChecked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/data/api/client.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib/data", id)
}

func TestResolveDisplayLevel_HalfCheckedBeatsDeeperExpandedFolder(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.HalfChecked),
		folder("lib/ui", depgraph.Checked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/ui/home.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib", id)
}

func TestResolveDisplayLevel_ProjectsOneLevelBelowExpandedFolder(t *testing.T) {
	ts := treeOf(folder("lib", depgraph.Checked))

	id, ok := depgraph.ResolveDisplayLevel("lib/ui/screens/login_screen.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib/ui", id)
}

func TestResolveDisplayLevel_ProjectsToFileDirectlyInsideExpandedFolder(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.Checked),
		file("lib/main.dart", depgraph.Checked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/main.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib/main.dart", id)
}

func TestResolveDisplayLevel_UsesDeepestExpandedFolder(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.Checked),
		folder("lib/ui", depgraph.Checked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/ui/screens/login_screen.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "lib/ui/screens", id)
}

func TestResolveDisplayLevel_FallsBackToIncludedAncestor(t *testing.T) {
	ts := treeOf(file("main.dart", depgraph.Checked))

	id, ok := depgraph.ResolveDisplayLevel("main.dart", ts)

	assert.True(t, ok)
	assert.Equal(t, "main.dart", id)
}

func TestResolveDisplayLevel_NoRepresentation(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.Unchecked),
		file("lib/main.dart", depgraph.Unchecked),
	)

	_, ok := depgraph.ResolveDisplayLevel("lib/main.dart", ts)
	assert.False(t, ok)

	_, ok = depgraph.ResolveDisplayLevel("test/widget_test.dart", ts)
	assert.False(t, ok)

	_, ok = depgraph.ResolveDisplayLevel("", ts)
	assert.False(t, ok)
}

func TestResolveDisplayLevel_MatchesWholeSegmentsOnly(t *testing.T) {
	ts := treeOf(folder("lib", depgraph.HalfChecked))

	_, ok := depgraph.ResolveDisplayLevel("library/main.dart", ts)

	assert.False(t, ok)
}

func TestResolveDisplayLevel_ProjectionMayLandOnExcludedEntry(t *testing.T) {
	ts := treeOf(
		folder("lib", depgraph.Checked),
		folder("lib/generated", depgraph.Unchecked),
	)

	id, ok := depgraph.ResolveDisplayLevel("lib/generated/model.g.dart", ts)

	// Resolution still answers; the builder drops ids that are not included.
	assert.True(t, ok)
	assert.Equal(t, "lib/generated", id)
}
