package tree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/config"
	"github.com/LegacyCodeHQ/chronograph/internal/snapshot"
)

type treeOptions struct {
	depsPath     string
	outputFormat string
	depth        int
	expand       []string
	collapse     []string
	exclude      []string
}

// Cmd represents the tree command
var Cmd = NewCommand()

// NewCommand returns a new tree command instance.
func NewCommand() *cobra.Command {
	opts := &treeOptions{
		outputFormat: string(snapshot.FormatJSON),
	}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Write a tree state for the files in a dependency list",
		Long: `Write a tree state for the files in a dependency list.

Folders above --depth are expanded, folders at --depth are summarized and everything
deeper is hidden. The result can be edited and passed to 'chronograph render --tree'.

Examples:
  chronograph tree --deps deps.json > tree.json
  chronograph tree --deps deps.json --depth 2 --format yaml
  chronograph tree --deps deps.json --expand lib/src --collapse test --exclude build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.depsPath, "deps", "d", "", "Dependency list file (.json or .yaml)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (json, yaml)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "l", 0, "Folder depth to summarize at (default from config)")
	cmd.Flags().StringSliceVar(&opts.expand, "expand", nil, "Folders to expand (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.collapse, "collapse", nil, "Folders to summarize as one node (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Files or folders to hide (comma-separated)")

	return cmd
}

func runTree(cmd *cobra.Command, opts *treeOptions) error {
	cfg := config.FromContext(cmd.Context())
	if !cmd.Flags().Changed("depth") {
		opts.depth = cfg.Depth
	}
	if opts.depsPath == "" {
		return fmt.Errorf("a dependency file is required (--deps)")
	}
	if opts.depth < 1 {
		return fmt.Errorf("--depth must be at least 1, got %d", opts.depth)
	}

	format, err := snapshot.ParseFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	normalizer, err := cfg.Normalizer()
	if err != nil {
		return err
	}

	deps, err := snapshot.LoadDependencies(opts.depsPath)
	if err != nil {
		return err
	}

	ts := depgraph.BuildTreeState(snapshot.DependencyPaths(deps, normalizer), depgraph.TreeOptions{
		Depth:      opts.depth,
		Expand:     opts.expand,
		Collapse:   opts.collapse,
		Exclude:    opts.exclude,
		Normalizer: normalizer,
	})

	return snapshot.WriteTreeState(cmd.OutOrStdout(), ts, format)
}
