package formatters

import (
	"path"
	"strings"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

// BuildNodeNames returns stable, distinct display names for node ids.
// Ids that share the same base name are disambiguated by increasing path suffix depth.
func BuildNodeNames(ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	groupedByBase := make(map[string][]string, len(ids))
	for _, id := range ids {
		base := path.Base(id)
		groupedByBase[base] = append(groupedByBase[base], id)
	}

	for base, grouped := range groupedByBase {
		if len(grouped) == 1 {
			names[grouped[0]] = base
			continue
		}

		for depth := 2; ; depth++ {
			suffixCounts := make(map[string]int, len(grouped))
			exhausted := true
			for _, id := range grouped {
				suffix := pathSuffix(id, depth)
				suffixCounts[suffix]++
				if suffix != id {
					exhausted = false
				}
			}

			allDistinct := true
			for _, id := range grouped {
				if suffixCounts[pathSuffix(id, depth)] > 1 {
					allDistinct = false
					break
				}
			}
			if !allDistinct && !exhausted {
				continue
			}

			for _, id := range grouped {
				names[id] = pathSuffix(id, depth)
			}
			break
		}
	}

	return names
}

func pathSuffix(id string, depth int) string {
	parts := strings.Split(strings.Trim(id, "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}

// displayNames labels nodes for rendering. Nodes inside a container keep their own label,
// since the container already shows where they live; top-level nodes are disambiguated
// against each other.
func displayNames(nodes []depgraph.GraphNode) map[string]string {
	var topLevel []string
	names := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n.Parent == "" {
			topLevel = append(topLevel, n.ID)
			continue
		}
		names[n.ID] = n.Label
	}
	for id, name := range BuildNodeNames(topLevel) {
		names[id] = name
	}
	return names
}
