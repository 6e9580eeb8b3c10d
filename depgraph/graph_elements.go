package depgraph

import (
	"encoding/json"
	"fmt"
)

// GraphNode is a visible node at the current level of detail.
type GraphNode struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Type       NodeType `json:"type"`
	Parent     string   `json:"parent,omitempty"`
	IsLeaf     bool     `json:"isLeaf"`
	IsExpanded bool     `json:"isExpanded"`
	HasChanges bool     `json:"hasChanges,omitempty"`
}

// GraphEdge aggregates every dependency whose endpoints resolve to the same visible pair.
type GraphEdge struct {
	ID                   string       `json:"id"`
	Source               string       `json:"source"`
	Target               string       `json:"target"`
	Weight               int          `json:"weight"`
	RelationshipType     string       `json:"relationshipType"`
	OriginalDependencies []Dependency `json:"originalDependencies"`
	DiffStatus           DiffStatus   `json:"diffStatus,omitempty"`
	InCycle              bool         `json:"inCycle,omitempty"`
}

// EdgeID returns the identifier of the edge between two visible nodes.
func EdgeID(source, target string) string {
	return source + "->" + target
}

// Cycle is a set of visible nodes that reach each other through edges, in lexical order.
type Cycle struct {
	Path []string `json:"path"`
}

// ElementKind tells the renderer whether an element is a node or an edge.
type ElementKind string

const (
	ElementNode ElementKind = "node"
	ElementEdge ElementKind = "edge"
)

// Element is one entry of the flat list handed to the renderer.
// Exactly one of Node and Edge is set, according to Kind.
type Element struct {
	Kind ElementKind
	Node *GraphNode
	Edge *GraphEdge
}

type elementJSON struct {
	Kind ElementKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the element as {"kind": ..., "data": ...}.
func (e Element) MarshalJSON() ([]byte, error) {
	var data any
	switch e.Kind {
	case ElementNode:
		data = e.Node
	case ElementEdge:
		data = e.Edge
	default:
		return nil, fmt.Errorf("unknown element kind %q", e.Kind)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementJSON{Kind: e.Kind, Data: raw})
}

// UnmarshalJSON decodes the {"kind": ..., "data": ...} form.
func (e *Element) UnmarshalJSON(b []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case ElementNode:
		var n GraphNode
		if err := json.Unmarshal(raw.Data, &n); err != nil {
			return err
		}
		*e = Element{Kind: ElementNode, Node: &n}
	case ElementEdge:
		var edge GraphEdge
		if err := json.Unmarshal(raw.Data, &edge); err != nil {
			return err
		}
		*e = Element{Kind: ElementEdge, Edge: &edge}
	default:
		return fmt.Errorf("unknown element kind %q", raw.Kind)
	}
	return nil
}

// Result is the outcome of one transform run.
// Nodes are ordered containers first (parents before children), then leaves.
type Result struct {
	Nodes       []GraphNode  `json:"nodes"`
	Edges       []GraphEdge  `json:"edges"`
	Cycles      []Cycle      `json:"cycles"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Elements flattens the result into the renderer's order: containers, leaves, edges.
func (r Result) Elements() []Element {
	elements := make([]Element, 0, len(r.Nodes)+len(r.Edges))
	for i := range r.Nodes {
		elements = append(elements, Element{Kind: ElementNode, Node: &r.Nodes[i]})
	}
	for i := range r.Edges {
		elements = append(elements, Element{Kind: ElementEdge, Edge: &r.Edges[i]})
	}
	return elements
}

// Node returns the node with the given id.
func (r Result) Node(id string) (GraphNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// Edge returns the edge between source and target.
func (r Result) Edge(source, target string) (GraphEdge, bool) {
	id := EdgeID(source, target)
	for _, e := range r.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return GraphEdge{}, false
}
