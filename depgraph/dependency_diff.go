package depgraph

// DiffDependencies compares two snapshots' dependency lists. Dependencies are matched on
// normalized source, normalized target and relationship type; each key is listed once,
// in first-seen order. Unchanged entries carry the head snapshot's record.
// Paths are normalized with normalizer, or DefaultPathNormalizer when it is nil; pass the
// same normalizer the transform will use so both agree on which dependencies match.
func DiffDependencies(base, head []Dependency, normalizer *PathNormalizer) DependencyDiff {
	if normalizer == nil {
		normalizer = DefaultPathNormalizer()
	}

	baseKeys := make(map[dependencyKey]bool, len(base))
	for _, d := range base {
		baseKeys[keyOf(normalizer, d)] = true
	}
	headKeys := make(map[dependencyKey]bool, len(head))
	for _, d := range head {
		headKeys[keyOf(normalizer, d)] = true
	}

	diff := DependencyDiff{
		Added:     []Dependency{},
		Removed:   []Dependency{},
		Unchanged: []Dependency{},
	}

	seen := make(map[dependencyKey]bool, len(head))
	for _, d := range head {
		k := keyOf(normalizer, d)
		if seen[k] {
			continue
		}
		seen[k] = true
		if baseKeys[k] {
			diff.Unchanged = append(diff.Unchanged, d)
		} else {
			diff.Added = append(diff.Added, d)
		}
	}

	seen = make(map[dependencyKey]bool, len(base))
	for _, d := range base {
		k := keyOf(normalizer, d)
		if seen[k] || headKeys[k] {
			continue
		}
		seen[k] = true
		diff.Removed = append(diff.Removed, d)
	}

	return diff
}

// WithRemoved returns head followed by the diff's removed dependencies, so that edges which
// only exist in the base snapshot can still be rendered as removed.
func WithRemoved(head []Dependency, diff DependencyDiff) []Dependency {
	deps := make([]Dependency, 0, len(head)+len(diff.Removed))
	deps = append(deps, head...)
	deps = append(deps, diff.Removed...)
	return deps
}
