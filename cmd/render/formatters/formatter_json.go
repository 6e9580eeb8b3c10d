package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

type jsonFormatter struct{}

type jsonOutput struct {
	Label       string                `json:"label,omitempty"`
	Elements    []depgraph.Element    `json:"elements"`
	Cycles      []depgraph.Cycle      `json:"cycles"`
	Diagnostics []depgraph.Diagnostic `json:"diagnostics,omitempty"`
}

// Format writes the flat element list the graph viewer consumes: containers, leaves, then edges.
func (f jsonFormatter) Format(result depgraph.Result, opts RenderOptions) (string, error) {
	cycles := result.Cycles
	if cycles == nil {
		cycles = []depgraph.Cycle{}
	}

	output := jsonOutput{
		Label:       opts.Label,
		Elements:    result.Elements(),
		Cycles:      cycles,
		Diagnostics: result.Diagnostics,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateURL returns false as JSON format does not support URL generation.
func (f jsonFormatter) GenerateURL(output string) (string, bool) {
	return "", false
}
