package render

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/chronograph/cmd/render/formatters"
	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/config"
)

type renderOptions struct {
	inputs       Inputs
	outputFormat string
	label        string
	generateURL  bool
	betweenFiles []string
}

// Cmd represents the render command
var Cmd = NewCommand()

// NewCommand returns a new render command instance.
func NewCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a dependency graph at the tree's level of detail",
		Long: `Render a dependency graph at the level of detail chosen in a file tree.

Files inside collapsed folders are summarized by the folder; expanded folders become
containers. Dependencies between the same pair of visible nodes are merged into one
weighted edge.

Examples:
  chronograph render --deps deps.json --tree tree.json
  chronograph render --deps deps.json --depth 2 -f dot
  chronograph render --deps head.json --base base.json -f mermaid
  chronograph render --deps deps.json --tree tree.json -w lib/a.dart,lib/b.dart`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputs.DepsPath, "deps", "d", "", "Dependency list file (.json or .yaml)")
	cmd.Flags().StringVarP(&opts.inputs.TreePath, "tree", "t", "", "Tree state file (default: built from the dependency paths at --depth)")
	cmd.Flags().StringVar(&opts.inputs.DiffPath, "diff", "", "Dependency diff file with added, removed and unchanged lists")
	cmd.Flags().StringVar(&opts.inputs.BasePath, "base", "", "Dependency list of the base snapshot to diff against")
	cmd.Flags().IntVarP(&opts.inputs.Depth, "depth", "l", 0, "Folder depth to summarize at when no tree state is given (default from config)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "", fmt.Sprintf("Output format (%s) (default from config)", formatters.SupportedFormats()))
	cmd.Flags().StringVar(&opts.label, "label", "", "Graph title")
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")
	cmd.Flags().StringSliceVarP(&opts.betweenFiles, "between", "w", nil, "Keep only paths between these files (comma-separated)")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	cfg := config.FromContext(cmd.Context())
	if !cmd.Flags().Changed("format") {
		opts.outputFormat = cfg.Format
	}
	if !cmd.Flags().Changed("depth") {
		opts.inputs.Depth = cfg.Depth
	}

	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}
	if len(opts.betweenFiles) == 1 {
		return fmt.Errorf("at least 2 files required for --between, got 1")
	}

	normalizer, err := cfg.Normalizer()
	if err != nil {
		return err
	}

	snap, err := opts.inputs.Load(normalizer)
	if err != nil {
		return err
	}
	slog.Debug("loaded render inputs",
		"dependencies", len(snap.Dependencies),
		"treeNodes", len(snap.TreeState),
		"diff", snap.Diff != nil)

	result := snap.Transform(normalizer, depgraph.SlogSink{Logger: slog.Default()})

	if len(opts.betweenFiles) > 0 {
		result, err = filterBetween(result, snap.TreeState, normalizer, opts.betweenFiles)
		if err != nil {
			return err
		}
	}

	output, err := formatter.Format(result, formatters.RenderOptions{Label: opts.label})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	if opts.generateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			fmt.Fprintln(cmd.OutOrStdout(), urlStr)
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", opts.outputFormat)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// filterBetween maps each requested file to the node that currently represents it and keeps
// only the paths between those nodes.
func filterBetween(result depgraph.Result, ts depgraph.TreeState, normalizer *depgraph.PathNormalizer, files []string) (depgraph.Result, error) {
	resolver := depgraph.NewDisplayLevelResolver(ts, normalizer)

	seen := make(map[string]bool)
	var ids, missing, expanded []string
	for _, f := range files {
		id, ok := resolver.Resolve(normalizer.Normalize(f))
		if !ok {
			missing = append(missing, f)
			continue
		}
		node, visible := result.Node(id)
		if !visible {
			missing = append(missing, f)
			continue
		}
		if !node.IsLeaf {
			expanded = append(expanded, f)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if len(missing) > 0 {
		return depgraph.Result{}, fmt.Errorf("files not found in graph: %v", missing)
	}
	if len(expanded) > 0 {
		return depgraph.Result{}, fmt.Errorf("expanded folders cannot be used with --between, pick files inside them: %v", expanded)
	}
	if len(ids) < 2 {
		return depgraph.Result{}, fmt.Errorf("at least 2 visible nodes required for --between, found %d", len(ids))
	}
	return depgraph.FilterBetween(result, ids), nil
}
