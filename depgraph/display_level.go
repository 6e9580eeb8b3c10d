package depgraph

import "strings"

// DisplayLevelResolver decides which visible identifier represents a file at the current
// level of detail.
type DisplayLevelResolver struct {
	index *pathIndex
}

// NewDisplayLevelResolver indexes the tree state for repeated resolution.
// A nil normalizer uses DefaultPathNormalizer.
func NewDisplayLevelResolver(ts TreeState, normalizer *PathNormalizer) *DisplayLevelResolver {
	if normalizer == nil {
		normalizer = DefaultPathNormalizer()
	}
	return &DisplayLevelResolver{index: newPathIndex(ts, normalizer)}
}

// ResolveDisplayLevel resolves a single normalized path against ts.
func ResolveDisplayLevel(path string, ts TreeState) (string, bool) {
	return NewDisplayLevelResolver(ts, nil).Resolve(path)
}

// Resolve returns the identifier that represents path, or false when the path has no
// visible representation. The first matching rule wins:
//
//  1. the deepest half-checked ancestor-or-self represents the path as a whole;
//  2. otherwise the path is projected to the immediate child of its deepest checked folder;
//  3. otherwise the deepest included ancestor-or-self represents it.
//
// Ancestors are matched on whole '/' segments.
func (r *DisplayLevelResolver) Resolve(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	a := r.index.walk(path)

	if a.halfChecked != "" {
		return a.halfChecked, true
	}

	if a.expandedFolder != "" {
		return projectBelow(a.expandedFolder, path), true
	}

	if a.included != "" {
		return a.included, true
	}

	return "", false
}

// projectBelow returns the entry exactly one level below folder on the way to path.
// folder must be a strict ancestor of path.
func projectBelow(folder, path string) string {
	rest := path[len(folder)+1:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return path[:len(folder)+1+i]
	}
	return path
}
