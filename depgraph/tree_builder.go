package depgraph

import "sort"

// TreeOptions controls the initial level of detail of a generated tree state.
type TreeOptions struct {
	// Depth is the folder depth shown as summarized units; shallower folders are expanded.
	// Values below 1 are treated as 1.
	Depth int
	// Expand lists folders to expand, together with their ancestors.
	Expand []string
	// Collapse lists folders to show as a single unit.
	Collapse []string
	// Exclude lists entries to hide together with everything below them.
	Exclude []string
	// Normalizer canonicalizes the paths. Defaults to DefaultPathNormalizer.
	Normalizer *PathNormalizer
}

// BuildTreeState derives a consistent tree state for the given file paths and every folder
// above them. It stands in for the interactive tree view when running headless.
func BuildTreeState(paths []string, opts TreeOptions) TreeState {
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = DefaultPathNormalizer()
	}
	depth := opts.Depth
	if depth < 1 {
		depth = 1
	}

	tb := &treeBuilder{
		state:    make(TreeState),
		children: make(map[string][]string),
	}
	for _, raw := range paths {
		if p := normalizer.Normalize(raw); p != "" {
			tb.addFile(p)
		}
	}
	for parent := range tb.children {
		sort.Strings(tb.children[parent])
	}

	for _, id := range tb.state.SortedIDs() {
		n := tb.state[id]
		d := pathDepth(id)
		switch {
		case n.Type == NodeTypeFolder && d < depth:
			n.CheckboxState = Checked
		case n.Type == NodeTypeFolder && d == depth:
			n.CheckboxState = HalfChecked
		case n.Type == NodeTypeFile && (n.Parent == "" || pathDepth(n.Parent) < depth):
			n.CheckboxState = Checked
		default:
			n.CheckboxState = Unchecked
		}
		tb.state[id] = n
	}

	for _, raw := range opts.Expand {
		tb.expand(normalizer.Normalize(raw))
	}
	for _, raw := range opts.Collapse {
		tb.collapse(normalizer.Normalize(raw))
	}
	for _, raw := range opts.Exclude {
		tb.setSubtree(normalizer.Normalize(raw), Unchecked)
	}

	return tb.state
}

type treeBuilder struct {
	state    TreeState
	children map[string][]string
}

func (tb *treeBuilder) addFile(p string) {
	if _, ok := tb.state[p]; !ok {
		tb.add(p, NodeTypeFile)
	}
	for parent := parentPath(p); parent != ""; parent = parentPath(parent) {
		existing, ok := tb.state[parent]
		if ok && existing.Type == NodeTypeFolder {
			break
		}
		if ok {
			// Seen as a file earlier, but other paths live below it.
			existing.Type = NodeTypeFolder
			tb.state[parent] = existing
			continue
		}
		tb.add(parent, NodeTypeFolder)
	}
}

func (tb *treeBuilder) add(id string, nodeType NodeType) {
	parent := parentPath(id)
	tb.state[id] = TreeNode{
		ID:     id,
		Label:  baseName(id),
		Type:   nodeType,
		Parent: parent,
	}
	tb.children[parent] = append(tb.children[parent], id)
}

func (tb *treeBuilder) setState(id string, s CheckboxState) {
	if n, ok := tb.state[id]; ok {
		n.CheckboxState = s
		tb.state[id] = n
	}
}

// open checks a folder and makes its hidden children visible at one level of detail.
func (tb *treeBuilder) open(id string) {
	tb.setState(id, Checked)
	for _, child := range tb.children[id] {
		n := tb.state[child]
		if n.CheckboxState != Unchecked {
			continue
		}
		if n.Type == NodeTypeFolder {
			tb.setState(child, HalfChecked)
		} else {
			tb.setState(child, Checked)
		}
	}
}

func (tb *treeBuilder) openAncestors(id string) {
	var ancestors []string
	for p := parentPath(id); p != ""; p = parentPath(p) {
		ancestors = append(ancestors, p)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		tb.open(ancestors[i])
	}
}

func (tb *treeBuilder) expand(id string) {
	n, ok := tb.state[id]
	if !ok {
		return
	}
	tb.openAncestors(id)
	if n.Type == NodeTypeFolder {
		tb.open(id)
	} else {
		tb.setState(id, Checked)
	}
}

func (tb *treeBuilder) collapse(id string) {
	n, ok := tb.state[id]
	if !ok || n.Type != NodeTypeFolder {
		return
	}
	tb.openAncestors(id)
	tb.setSubtree(id, Unchecked)
	tb.setState(id, HalfChecked)
}

func (tb *treeBuilder) setSubtree(id string, s CheckboxState) {
	if _, ok := tb.state[id]; !ok {
		return
	}
	tb.setState(id, s)
	for _, child := range tb.children[id] {
		tb.setSubtree(child, s)
	}
}
