package formatters

import (
	"sort"
	"strings"
)

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var outputFormats = []OutputFormat{OutputFormatDOT, OutputFormatJSON, OutputFormatMermaid}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a user-supplied name into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	candidate := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range outputFormats {
		if f == candidate {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the format names for help and error messages.
func SupportedFormats() string {
	names := make([]string, 0, len(outputFormats))
	for _, f := range outputFormats {
		names = append(names, f.String())
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
