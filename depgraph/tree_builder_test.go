package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleProjectFiles = []string{
	"lib/main.dart",
	"lib/ui/home.dart",
	"lib/ui/widgets/card.dart",
	"test/app_test.dart",
	"README.md",
}

func states(ts depgraph.TreeState) map[string]depgraph.CheckboxState {
	m := make(map[string]depgraph.CheckboxState, len(ts))
	for id, n := range ts {
		m[id] = n.CheckboxState
	}
	return m
}

func TestBuildTreeState_CreatesFoldersForEveryAncestor(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{Depth: 1})

	assert.Equal(t, []string{
		"README.md",
		"lib",
		"lib/main.dart",
		"lib/ui",
		"lib/ui/home.dart",
		"lib/ui/widgets",
		"lib/ui/widgets/card.dart",
		"test",
		"test/app_test.dart",
	}, ts.SortedIDs())

	widgets := ts["lib/ui/widgets"]
	assert.Equal(t, depgraph.NodeTypeFolder, widgets.Type)
	assert.Equal(t, "lib/ui", widgets.Parent)
	assert.Equal(t, "widgets", widgets.Label)

	card := ts["lib/ui/widgets/card.dart"]
	assert.Equal(t, depgraph.NodeTypeFile, card.Type)
	assert.Equal(t, "lib/ui/widgets", card.Parent)

	assert.Empty(t, ts["lib"].Parent)
}

func TestBuildTreeState_DepthOne(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{Depth: 1})

	assert.Equal(t, map[string]depgraph.CheckboxState{
		"README.md":                depgraph.Checked,
		"lib":                      depgraph.HalfChecked,
		"lib/main.dart":            depgraph.Unchecked,
		"lib/ui":                   depgraph.Unchecked,
		"lib/ui/home.dart":         depgraph.Unchecked,
		"lib/ui/widgets":           depgraph.Unchecked,
		"lib/ui/widgets/card.dart": depgraph.Unchecked,
		"test":                     depgraph.HalfChecked,
		"test/app_test.dart":       depgraph.Unchecked,
	}, states(ts))
}

func TestBuildTreeState_DepthTwo(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{Depth: 2})

	assert.Equal(t, map[string]depgraph.CheckboxState{
		"README.md":                depgraph.Checked,
		"lib":                      depgraph.Checked,
		"lib/main.dart":            depgraph.Checked,
		"lib/ui":                   depgraph.HalfChecked,
		"lib/ui/home.dart":         depgraph.Unchecked,
		"lib/ui/widgets":           depgraph.Unchecked,
		"lib/ui/widgets/card.dart": depgraph.Unchecked,
		"test":                     depgraph.Checked,
		"test/app_test.dart":       depgraph.Checked,
	}, states(ts))
}

func TestBuildTreeState_ExpandOpensAncestors(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{
		Depth:  1,
		Expand: []string{`lib\ui`},
	})

	s := states(ts)
	assert.Equal(t, depgraph.Checked, s["lib"])
	assert.Equal(t, depgraph.Checked, s["lib/main.dart"])
	assert.Equal(t, depgraph.Checked, s["lib/ui"])
	assert.Equal(t, depgraph.Checked, s["lib/ui/home.dart"])
	assert.Equal(t, depgraph.HalfChecked, s["lib/ui/widgets"])
	assert.Equal(t, depgraph.Unchecked, s["lib/ui/widgets/card.dart"])
	assert.Equal(t, depgraph.HalfChecked, s["test"])
}

func TestBuildTreeState_CollapseAndExclude(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{
		Depth:    2,
		Collapse: []string{"lib"},
		Exclude:  []string{"test"},
	})

	s := states(ts)
	assert.Equal(t, depgraph.HalfChecked, s["lib"])
	assert.Equal(t, depgraph.Unchecked, s["lib/main.dart"])
	assert.Equal(t, depgraph.Unchecked, s["lib/ui"])
	assert.Equal(t, depgraph.Unchecked, s["test"])
	assert.Equal(t, depgraph.Unchecked, s["test/app_test.dart"])
	assert.Equal(t, depgraph.Checked, s["README.md"])
}

func TestBuildTreeState_UnknownOverridesAreIgnored(t *testing.T) {
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{
		Depth:    1,
		Expand:   []string{"missing"},
		Collapse: []string{"lib/main.dart"},
		Exclude:  []string{"nowhere"},
	})

	assert.Equal(t, states(depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{Depth: 1})), states(ts))
}

func TestBuildTreeState_DrivesTransform(t *testing.T) {
	deps := []depgraph.Dependency{
		dep("lib/main.dart", "lib/ui/home.dart"),
		dep("lib/ui/home.dart", "lib/ui/widgets/card.dart"),
		dep("test/app_test.dart", "lib/main.dart"),
	}
	ts := depgraph.BuildTreeState(sampleProjectFiles, depgraph.TreeOptions{Depth: 2})

	result := depgraph.Transform(deps, ts, nil, depgraph.Options{})

	assert.ElementsMatch(t, []string{
		"lib/main.dart->lib/ui",
		"test/app_test.dart->lib/main.dart",
	}, edgeIDs(result))

	lib, ok := result.Node("lib")
	require.True(t, ok)
	assert.True(t, lib.IsExpanded)
}
