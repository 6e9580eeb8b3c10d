package render

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/rendercache"
	"github.com/LegacyCodeHQ/chronograph/internal/snapshot"
)

// ErrNoDependencies is returned when no dependency file is given.
var ErrNoDependencies = errors.New("a dependency file is required (--deps)")

// Inputs names the files one render reads.
type Inputs struct {
	DepsPath string
	// TreePath is optional; without it the tree state is built from the dependency paths.
	TreePath string
	DiffPath string
	// BasePath is a second dependency file; the diff is computed against it.
	BasePath string
	// Depth is used when the tree state is built rather than loaded.
	Depth int
}

// Validate reports flag combinations that cannot be rendered.
func (in Inputs) Validate() error {
	if in.DepsPath == "" {
		return ErrNoDependencies
	}
	if in.DiffPath != "" && in.BasePath != "" {
		return fmt.Errorf("--diff cannot be used with --base")
	}
	if in.TreePath == "" && in.Depth < 1 {
		return fmt.Errorf("--depth must be at least 1, got %d", in.Depth)
	}
	return nil
}

// Paths lists the files that exist as inputs, in a fixed order.
func (in Inputs) Paths() []string {
	var paths []string
	for _, p := range []string{in.DepsPath, in.TreePath, in.DiffPath, in.BasePath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Key hashes the content of every input file together with the settings that change the
// result, so identical inputs map to the same cached render. Depth only counts when the
// tree state is derived rather than read from a file.
func (in Inputs) Key(normalizer *depgraph.PathNormalizer) (uint64, error) {
	var depth []byte
	if in.TreePath == "" {
		depth = []byte(strconv.Itoa(in.Depth))
	}
	parts := [][]byte{depth}
	if normalizer != nil {
		parts = append(parts, []byte(strings.Join(normalizer.Patterns(), "\n")))
	}
	for _, p := range []string{in.DepsPath, in.TreePath, in.DiffPath, in.BasePath} {
		if p == "" {
			parts = append(parts, nil)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", p, err)
		}
		parts = append(parts, data)
	}
	return rendercache.Key(parts...), nil
}

// Snapshot is one set of loaded inputs, ready for the transform.
type Snapshot struct {
	Dependencies []depgraph.Dependency
	TreeState    depgraph.TreeState
	Diff         *depgraph.DependencyDiff
}

// Load reads every input. When a base file is given, the diff is computed against it and
// the base-only dependencies are appended so removed edges can be drawn.
func (in Inputs) Load(normalizer *depgraph.PathNormalizer) (Snapshot, error) {
	if err := in.Validate(); err != nil {
		return Snapshot{}, err
	}

	deps, err := snapshot.LoadDependencies(in.DepsPath)
	if err != nil {
		return Snapshot{}, err
	}

	var diff *depgraph.DependencyDiff
	switch {
	case in.DiffPath != "":
		diff, err = snapshot.LoadDiff(in.DiffPath)
		if err != nil {
			return Snapshot{}, err
		}
	case in.BasePath != "":
		base, err := snapshot.LoadDependencies(in.BasePath)
		if err != nil {
			return Snapshot{}, err
		}
		d := depgraph.DiffDependencies(base, deps, normalizer)
		deps = depgraph.WithRemoved(deps, d)
		diff = &d
	}

	var ts depgraph.TreeState
	if in.TreePath != "" {
		ts, err = snapshot.LoadTreeState(in.TreePath)
		if err != nil {
			return Snapshot{}, err
		}
	} else {
		ts = depgraph.BuildTreeState(snapshot.DependencyPaths(deps, normalizer), depgraph.TreeOptions{
			Depth:      in.Depth,
			Normalizer: normalizer,
		})
	}

	return Snapshot{Dependencies: deps, TreeState: ts, Diff: diff}, nil
}

// Transform runs the level-of-detail transform over the snapshot.
func (s Snapshot) Transform(normalizer *depgraph.PathNormalizer, sink depgraph.DiagnosticsSink) depgraph.Result {
	return depgraph.Transform(s.Dependencies, s.TreeState, s.Diff, depgraph.Options{
		Normalizer:  normalizer,
		Diagnostics: sink,
	})
}
