// Package snapshot reads and writes the transform's inputs: dependency lists, tree states
// and dependency diffs, as JSON or YAML chosen by file extension.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

// Format is a serialization format for snapshot files.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension; anything but .yaml/.yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown snapshot format: %s (valid options: json, yaml)", s)
	}
}

func decode(format Format, data []byte, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

type dependencyDocument struct {
	Dependencies     []depgraph.Dependency `json:"dependencies" yaml:"dependencies"`
	FileDependencies []depgraph.Dependency `json:"file_dependencies" yaml:"file_dependencies"`
}

// ParseDependencies accepts either a bare list of dependencies or a document with a
// "dependencies" (or "file_dependencies") list.
func ParseDependencies(data []byte, format Format) ([]depgraph.Dependency, error) {
	var deps []depgraph.Dependency
	if err := decode(format, data, &deps); err == nil {
		return deps, nil
	}

	var doc dependencyDocument
	if err := decode(format, data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dependencies: %w", err)
	}
	if doc.Dependencies != nil {
		return doc.Dependencies, nil
	}
	return doc.FileDependencies, nil
}

// ParseTreeState accepts either a map keyed by node id or a list of nodes.
// Nodes missing an id take it from their key.
func ParseTreeState(data []byte, format Format) (depgraph.TreeState, error) {
	var byID map[string]depgraph.TreeNode
	if err := decode(format, data, &byID); err == nil {
		ts := make(depgraph.TreeState, len(byID))
		for key, n := range byID {
			if n.ID == "" {
				n.ID = key
			}
			ts[key] = n
		}
		return ts, nil
	}

	var nodes []depgraph.TreeNode
	if err := decode(format, data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse tree state: %w", err)
	}
	ts := make(depgraph.TreeState, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("failed to parse tree state: node %q has no id", n.Label)
		}
		ts[n.ID] = n
	}
	return ts, nil
}

// ParseDiff parses a {added, removed, unchanged} document.
func ParseDiff(data []byte, format Format) (*depgraph.DependencyDiff, error) {
	var diff depgraph.DependencyDiff
	if err := decode(format, data, &diff); err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}
	return &diff, nil
}

// LoadDependencies reads a dependency list file.
func LoadDependencies(path string) ([]depgraph.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependencies %s: %w", path, err)
	}
	return ParseDependencies(data, FormatForPath(path))
}

// LoadTreeState reads a tree-state file.
func LoadTreeState(path string) (depgraph.TreeState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree state %s: %w", path, err)
	}
	return ParseTreeState(data, FormatForPath(path))
}

// LoadDiff reads a dependency diff file.
func LoadDiff(path string) (*depgraph.DependencyDiff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff %s: %w", path, err)
	}
	return ParseDiff(data, FormatForPath(path))
}

// WriteTreeState encodes ts in the given format, keyed by id in lexical order.
func WriteTreeState(w io.Writer, ts depgraph.TreeState, format Format) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]depgraph.TreeNode(ts)); err != nil {
			return err
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// DependencyPaths returns every distinct normalized endpoint of deps, sorted.
func DependencyPaths(deps []depgraph.Dependency, normalizer *depgraph.PathNormalizer) []string {
	seen := make(map[string]bool)
	for _, d := range deps {
		for _, raw := range []string{d.SourceFile, d.TargetFile} {
			if p := normalizer.Normalize(raw); p != "" {
				seen[p] = true
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
