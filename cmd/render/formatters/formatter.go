package formatters

import (
	"fmt"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

// RenderOptions contains optional parameters for rendering a transform result.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a transform result to a formatted string representation.
	Format(result depgraph.Result, opts RenderOptions) (string, error)
	// GenerateURL returns a link to an online viewer with output embedded, if the format has one.
	GenerateURL(output string) (string, bool)
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	f, ok := ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}

	switch f {
	case OutputFormatDOT:
		return dotFormatter{}, nil
	case OutputFormatMermaid:
		return mermaidFormatter{}, nil
	default:
		return jsonFormatter{}, nil
	}
}
