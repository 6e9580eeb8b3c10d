package formatters

import (
	"path"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

var availableColors = []string{
	"lightblue", "lightyellow", "mistyrose", "lightsalmon",
	"lightpink", "lavender", "peachpuff", "plum", "powderblue", "khaki",
	"palegoldenrod", "thistle",
}

const (
	colorTest      = "lightgreen"
	colorMajority  = "white"
	colorFolder    = "lightgrey"
	colorChanged   = "darkorange"
	colorCycle     = "#d62728"
	colorAdded     = "green4"
	colorRemoved   = "red"
)

// leafStyles picks a fill color for every leaf node.
// Test files are light green; files with the most common extension are white; other
// extensions get a color of their own; collapsed folders are grey.
type leafStyles struct {
	fill map[string]string
}

func newLeafStyles(nodes []depgraph.GraphNode) leafStyles {
	var files []string
	for _, n := range nodes {
		if n.IsLeaf && n.Type == depgraph.NodeTypeFile {
			files = append(files, n.ID)
		}
	}

	extensionCounts := make(map[string]int)
	for _, f := range files {
		extensionCounts[path.Ext(f)]++
	}

	sortedExtensions := make([]string, 0, len(extensionCounts))
	for ext := range extensionCounts {
		sortedExtensions = append(sortedExtensions, ext)
	}
	sort.Strings(sortedExtensions)

	majorityExtension := ""
	maxCount := 0
	for _, ext := range sortedExtensions {
		if extensionCounts[ext] > maxCount {
			maxCount = extensionCounts[ext]
			majorityExtension = ext
		}
	}

	extensionColors := make(map[string]string)
	i := 0
	for _, ext := range sortedExtensions {
		if ext == "" {
			continue
		}
		extensionColors[ext] = availableColors[i%len(availableColors)]
		i++
	}

	fill := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if !n.IsLeaf {
			continue
		}
		ext := path.Ext(n.ID)
		switch {
		case n.Type == depgraph.NodeTypeFolder:
			fill[n.ID] = colorFolder
		case isTestFile(n.ID):
			fill[n.ID] = colorTest
		case len(sortedExtensions) < 2 || ext == majorityExtension:
			fill[n.ID] = colorMajority
		case extensionColors[ext] != "":
			fill[n.ID] = extensionColors[ext]
		default:
			fill[n.ID] = colorMajority
		}
	}
	return leafStyles{fill: fill}
}

func (s leafStyles) fillColor(id string) string {
	if c, ok := s.fill[id]; ok {
		return c
	}
	return colorMajority
}

var testDirectories = map[string]bool{
	"test":      true,
	"tests":     true,
	"__tests__": true,
	"spec":      true,
}

// isTestFile applies the common naming conventions: foo_test.go, foo_test.dart,
// foo.test.ts, foo.spec.js, FooTest.java, test_foo.py, or anything under a test directory.
func isTestFile(id string) bool {
	segments := strings.Split(id, "/")
	for _, dir := range segments[:len(segments)-1] {
		if testDirectories[dir] {
			return true
		}
	}

	base := segments[len(segments)-1]
	stem := strings.TrimSuffix(base, path.Ext(base))
	switch {
	case strings.HasSuffix(stem, "_test"), strings.HasSuffix(stem, ".test"), strings.HasSuffix(stem, ".spec"):
		return true
	case strings.HasPrefix(stem, "test_"):
		return true
	case strings.HasSuffix(stem, "Test") || strings.HasSuffix(stem, "Tests"):
		return true
	}
	return false
}
