package depgraph

// Dependency is one real source-to-target relationship reported by the analyzer for a snapshot.
// Paths may be non-canonical; they are normalized before resolution.
type Dependency struct {
	SourceFile       string   `json:"source_file" yaml:"source_file"`
	TargetFile       string   `json:"target_file" yaml:"target_file"`
	RelationshipType string   `json:"relationship_type" yaml:"relationship_type"`
	Weight           int      `json:"weight,omitempty" yaml:"weight,omitempty"`
	ImportStatement  string   `json:"import_statement,omitempty" yaml:"import_statement,omitempty"`
	LineNumber       int      `json:"line_number,omitempty" yaml:"line_number,omitempty"`
	Symbols          []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// EffectiveWeight returns the weight used for aggregation. Unset or non-positive weights count as 1.
func (d Dependency) EffectiveWeight() int {
	if d.Weight <= 0 {
		return 1
	}
	return d.Weight
}

// DiffStatus classifies a dependency across two compared snapshots.
type DiffStatus string

const (
	DiffStatusNone      DiffStatus = ""
	DiffStatusAdded     DiffStatus = "added"
	DiffStatusRemoved   DiffStatus = "removed"
	DiffStatusUnchanged DiffStatus = "unchanged"
)

// IsChange reports whether the status marks a dependency as added or removed.
func (s DiffStatus) IsChange() bool {
	return s == DiffStatusAdded || s == DiffStatusRemoved
}

// DependencyDiff is the three-way comparison of two snapshots' dependency lists.
type DependencyDiff struct {
	Added     []Dependency `json:"added" yaml:"added"`
	Removed   []Dependency `json:"removed" yaml:"removed"`
	Unchanged []Dependency `json:"unchanged" yaml:"unchanged"`
}

// dependencyKey identifies a dependency for diff lookup: source→target→relationship type.
type dependencyKey struct {
	source, target, relationship string
}

func keyOf(normalizer *PathNormalizer, d Dependency) dependencyKey {
	return dependencyKey{
		source:       normalizer.Normalize(d.SourceFile),
		target:       normalizer.Normalize(d.TargetFile),
		relationship: d.RelationshipType,
	}
}

// diffIndex answers the diff status of a single raw dependency.
type diffIndex map[dependencyKey]DiffStatus

func newDiffIndex(normalizer *PathNormalizer, diff *DependencyDiff) diffIndex {
	if diff == nil {
		return nil
	}

	index := make(diffIndex, len(diff.Added)+len(diff.Removed)+len(diff.Unchanged))
	// Lower priority first so added/removed overwrite unchanged for the same key.
	for _, d := range diff.Unchanged {
		index[keyOf(normalizer, d)] = DiffStatusUnchanged
	}
	for _, d := range diff.Removed {
		index[keyOf(normalizer, d)] = DiffStatusRemoved
	}
	for _, d := range diff.Added {
		index[keyOf(normalizer, d)] = DiffStatusAdded
	}
	return index
}

func (idx diffIndex) status(normalizer *PathNormalizer, d Dependency) DiffStatus {
	if idx == nil {
		return DiffStatusNone
	}
	return idx[keyOf(normalizer, d)]
}
