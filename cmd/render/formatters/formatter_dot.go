package formatters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

type dotFormatter struct{}

// Format converts the result to Graphviz DOT. Containers become nested clusters.
func (f dotFormatter) Format(result depgraph.Result, opts RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  compound=true;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	w := dotWriter{
		sb:     &sb,
		tree:   newContainment(result.Nodes),
		names:  displayNames(result.Nodes),
		styles: newLeafStyles(result.Nodes),
	}
	for _, n := range w.tree.roots {
		w.writeNode(n, 1)
	}
	if len(result.Nodes) > 0 {
		sb.WriteString("\n")
	}

	for _, e := range result.Edges {
		sb.WriteString(fmt.Sprintf("  %q -> %q%s;\n", e.Source, e.Target, dotEdgeAttributes(e)))
	}

	sb.WriteString("}")
	return sb.String(), nil
}

type dotWriter struct {
	sb     *strings.Builder
	tree   containment
	names  map[string]string
	styles leafStyles
}

func (w dotWriter) writeNode(n depgraph.GraphNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf {
		attrs := []string{fmt.Sprintf("label=%q", w.names[n.ID])}
		if n.Type == depgraph.NodeTypeFolder {
			attrs = append(attrs, "shape=folder")
		}
		attrs = append(attrs, "style=filled", "fillcolor="+w.styles.fillColor(n.ID))
		if n.HasChanges {
			attrs = append(attrs, "color="+colorChanged, "penwidth=2")
		}
		w.sb.WriteString(fmt.Sprintf("%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", ")))
		return
	}

	w.sb.WriteString(fmt.Sprintf("%ssubgraph %q {\n", indent, "cluster_"+n.ID))
	w.sb.WriteString(fmt.Sprintf("%s  label=%q;\n", indent, w.names[n.ID]))
	w.sb.WriteString(fmt.Sprintf("%s  style=rounded;\n", indent))
	if n.HasChanges {
		w.sb.WriteString(fmt.Sprintf("%s  color=%s;\n", indent, colorChanged))
	}
	for _, child := range w.tree.children[n.ID] {
		w.writeNode(child, depth+1)
	}
	w.sb.WriteString(fmt.Sprintf("%s}\n", indent))
}

func dotEdgeAttributes(e depgraph.GraphEdge) string {
	var attrs []string
	if e.Weight > 1 {
		attrs = append(attrs, fmt.Sprintf("label=\"%d\"", e.Weight))
	}
	switch e.DiffStatus {
	case depgraph.DiffStatusAdded:
		attrs = append(attrs, "color="+colorAdded)
	case depgraph.DiffStatusRemoved:
		attrs = append(attrs, "color="+colorRemoved, "style=dashed")
	default:
		if e.InCycle {
			attrs = append(attrs, fmt.Sprintf("color=%q", colorCycle))
		}
	}
	if e.InCycle {
		attrs = append(attrs, "penwidth=2")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f dotFormatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
