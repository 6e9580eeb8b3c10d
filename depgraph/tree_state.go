package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// CheckboxState is the tri-state inclusion choice the tree view records for a node.
type CheckboxState int

const (
	// Unchecked excludes the node and everything resolved through it.
	Unchecked CheckboxState = iota
	// HalfChecked shows the node as one summarized unit; it is never descended past.
	HalfChecked
	// Checked shows a file, or expands a folder into a container of its children.
	Checked
)

func (s CheckboxState) String() string {
	switch s {
	case Checked:
		return "checked"
	case HalfChecked:
		return "half-checked"
	default:
		return "unchecked"
	}
}

// MarshalText encodes the state as "checked", "half-checked" or "unchecked".
func (s CheckboxState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the canonical names plus the spellings common tree-view widgets emit.
func (s *CheckboxState) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "checked", "true":
		*s = Checked
	case "half-checked", "halfchecked", "half_checked", "indeterminate", "partial":
		*s = HalfChecked
	case "unchecked", "false", "":
		*s = Unchecked
	default:
		return fmt.Errorf("unknown checkbox state %q", string(text))
	}
	return nil
}

// NodeType distinguishes files from folders.
type NodeType string

const (
	NodeTypeFile   NodeType = "file"
	NodeTypeFolder NodeType = "folder"
)

// TreeNode is one file-system entry the user can include or exclude.
type TreeNode struct {
	ID            string        `json:"id" yaml:"id"`
	Label         string        `json:"label" yaml:"label"`
	Type          NodeType      `json:"type" yaml:"type"`
	Parent        string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	CheckboxState CheckboxState `json:"checkboxState" yaml:"checkboxState"`
}

// TreeState is the user's current inclusion and expansion choices, keyed by node identifier.
// The transform only reads it.
type TreeState map[string]TreeNode

// Visibility partitions tree-state identifiers into the two sets the transform works with.
type Visibility struct {
	// Included holds every node that is checked or half-checked.
	Included map[string]bool
	// Expanded holds every folder that is checked.
	Expanded map[string]bool
}

// ExtractVisibility reads the tree state once and returns its included and expanded sets.
func ExtractVisibility(ts TreeState) Visibility {
	return newPathIndex(ts, DefaultPathNormalizer()).visibility()
}

// SortedIDs returns the identifiers of the tree state in lexical order.
func (ts TreeState) SortedIDs() []string {
	ids := make([]string, 0, len(ts))
	for id := range ts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// indexEntry is the part of a tree node the resolver needs, stored under its canonical id.
type indexEntry struct {
	id       string
	label    string
	nodeType NodeType
	state    CheckboxState
}

func (e *indexEntry) included() bool {
	return e.state == Checked || e.state == HalfChecked
}

func (e *indexEntry) expanded() bool {
	return e.state == Checked && e.nodeType == NodeTypeFolder
}

// trieNode is one path segment in the tree-state index.
type trieNode struct {
	children map[string]*trieNode
	entry    *indexEntry
}

// pathIndex is a keyed table of tree nodes plus a segment trie over their identifiers,
// so ancestor lookups cost one walk down the path instead of a scan over the whole tree.
type pathIndex struct {
	root    *trieNode
	entries map[string]*indexEntry
}

func newPathIndex(ts TreeState, normalizer *PathNormalizer) *pathIndex {
	idx := &pathIndex{
		root:    &trieNode{},
		entries: make(map[string]*indexEntry, len(ts)),
	}

	// Sorted so that keys colliding after normalization resolve the same way every run.
	for _, key := range ts.SortedIDs() {
		node := ts[key]
		raw := key
		if raw == "" {
			raw = node.ID
		}
		id := normalizer.Normalize(raw)
		if id == "" {
			continue
		}

		nodeType := node.Type
		if nodeType != NodeTypeFolder {
			nodeType = NodeTypeFile
		}
		label := node.Label
		if label == "" {
			label = baseName(id)
		}

		entry := &indexEntry{id: id, label: label, nodeType: nodeType, state: node.CheckboxState}
		idx.entries[id] = entry
		idx.insert(id, entry)
	}
	return idx
}

func (idx *pathIndex) insert(id string, entry *indexEntry) {
	current := idx.root
	for _, segment := range strings.Split(id, "/") {
		if current.children == nil {
			current.children = make(map[string]*trieNode)
		}
		next, ok := current.children[segment]
		if !ok {
			next = &trieNode{}
			current.children[segment] = next
		}
		current = next
	}
	current.entry = entry
}

func (idx *pathIndex) lookup(id string) (*indexEntry, bool) {
	e, ok := idx.entries[id]
	return e, ok
}

func (idx *pathIndex) visibility() Visibility {
	v := Visibility{
		Included: make(map[string]bool),
		Expanded: make(map[string]bool),
	}
	for id, e := range idx.entries {
		if e.included() {
			v.Included[id] = true
		}
		if e.expanded() {
			v.Expanded[id] = true
		}
	}
	return v
}

// ancestry holds the deepest matches found while walking a path down the trie.
type ancestry struct {
	halfChecked    string // deepest half-checked ancestor-or-self
	expandedFolder string // deepest checked folder strictly above the path
	included       string // deepest included ancestor-or-self
}

// walk follows id segment by segment and records the deepest node of each kind on the way.
func (idx *pathIndex) walk(id string) ancestry {
	var a ancestry
	current := idx.root
	start := 0
	for start <= len(id) {
		end := strings.IndexByte(id[start:], '/')
		if end < 0 {
			end = len(id)
		} else {
			end += start
		}

		next, ok := current.children[id[start:end]]
		if !ok {
			break
		}
		current = next

		if e := current.entry; e != nil {
			prefix := id[:end]
			isSelf := end == len(id)
			if e.state == HalfChecked {
				a.halfChecked = prefix
			}
			if e.included() {
				a.included = prefix
			}
			if e.expanded() && !isSelf {
				a.expandedFolder = prefix
			}
		}
		start = end + 1
	}
	return a
}
