package formatters

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

type mermaidFormatter struct{}

// Format converts the result to a Mermaid.js flowchart. Containers become nested subgraphs.
func (f mermaidFormatter) Format(result depgraph.Result, opts RenderOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	names := displayNames(result.Nodes)

	// Mermaid node ids can't contain dots or slashes.
	nodeIDs := make(map[string]string, len(result.Nodes))
	for i, n := range result.Nodes {
		nodeIDs[n.ID] = fmt.Sprintf("n%d", i)
	}

	cycleNodes := make(map[string]bool)
	for i, cycle := range result.Cycles {
		if len(cycle.Path) == 0 {
			continue
		}
		parts := make([]string, 0, len(cycle.Path)+1)
		for _, id := range cycle.Path {
			parts = append(parts, names[id])
			cycleNodes[id] = true
		}
		parts = append(parts, names[cycle.Path[0]])
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, " -> ")))
	}

	w := mermaidWriter{sb: &sb, tree: newContainment(result.Nodes), names: names, ids: nodeIDs}
	for _, n := range w.tree.roots {
		w.writeNode(n, 1)
	}

	var edgesSB strings.Builder
	var cycleEdges, addedEdges, removedEdges []int
	for i, e := range result.Edges {
		arrow := "-->"
		if e.DiffStatus == depgraph.DiffStatusRemoved {
			arrow = "-.->"
		}
		label := ""
		if e.Weight > 1 {
			label = fmt.Sprintf("|%d|", e.Weight)
		}
		edgesSB.WriteString(fmt.Sprintf("    %s %s%s %s\n", nodeIDs[e.Source], arrow, label, nodeIDs[e.Target]))

		switch {
		case e.InCycle:
			cycleEdges = append(cycleEdges, i)
		case e.DiffStatus == depgraph.DiffStatusAdded:
			addedEdges = append(addedEdges, i)
		case e.DiffStatus == depgraph.DiffStatusRemoved:
			removedEdges = append(removedEdges, i)
		}
	}

	var testNodes, folderNodes, changedNodes []string
	for _, n := range result.Nodes {
		id := nodeIDs[n.ID]
		switch {
		case n.IsLeaf && n.Type == depgraph.NodeTypeFolder:
			folderNodes = append(folderNodes, id)
		case n.IsLeaf && isTestFile(n.ID):
			testNodes = append(testNodes, id)
		}
		if n.HasChanges {
			changedNodes = append(changedNodes, id)
		}
	}

	var stylesSB strings.Builder
	if len(testNodes) > 0 {
		stylesSB.WriteString("    classDef testFile fill:#90EE90,stroke:#228B22,color:#000000\n")
	}
	if len(folderNodes) > 0 {
		stylesSB.WriteString("    classDef folder fill:#D3D3D3,stroke:#666666,color:#000000\n")
	}
	if len(changedNodes) > 0 {
		stylesSB.WriteString("    classDef changed stroke:#FF8C00,stroke-width:3px\n")
	}
	if len(testNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s testFile\n", strings.Join(testNodes, ",")))
	}
	if len(folderNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s folder\n", strings.Join(folderNodes, ",")))
	}
	if len(changedNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s changed\n", strings.Join(changedNodes, ",")))
	}
	for _, n := range result.Nodes {
		if cycleNodes[n.ID] {
			stylesSB.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeIDs[n.ID]))
		}
	}
	for _, idx := range cycleEdges {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}
	for _, idx := range addedEdges {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#2ca02c,stroke-width:2px\n", idx))
	}
	for _, idx := range removedEdges {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#999999\n", idx))
	}

	if edgesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(edgesSB.String())
	}
	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

type mermaidWriter struct {
	sb    *strings.Builder
	tree  containment
	names map[string]string
	ids   map[string]string
}

func (w mermaidWriter) writeNode(n depgraph.GraphNode, depth int) {
	indent := strings.Repeat("    ", depth)
	label := strings.ReplaceAll(w.names[n.ID], "\"", "#quot;")
	if n.IsLeaf {
		w.sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, w.ids[n.ID], label))
		return
	}

	w.sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"%s\"]\n", indent, w.ids[n.ID], label))
	for _, child := range w.tree.children[n.ID] {
		w.writeNode(child, depth+1)
	}
	w.sb.WriteString(fmt.Sprintf("%send\n", indent))
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f mermaidFormatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
