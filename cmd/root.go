package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/chronograph/cmd/render"
	"github.com/LegacyCodeHQ/chronograph/cmd/tree"
	"github.com/LegacyCodeHQ/chronograph/cmd/watch"
	"github.com/LegacyCodeHQ/chronograph/internal/config"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

type rootOptions struct {
	configPath string
	verbose    bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand(render.Cmd, tree.Cmd, watch.Cmd)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand(subcommands ...*cobra.Command) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chronograph",
		Short: "Render dependency graphs at the level of detail of a file tree",
		Long: `Chronograph turns file-level dependencies into a graph whose level of detail
follows a file tree: collapsed folders stand in for everything inside them, expanded
folders become containers, and parallel dependencies merge into weighted edges.

Settings are read from .chronograph.yaml in the working directory (or --config) and
from CHRONOGRAPH_* environment variables; flags take precedence.

Use 'chronograph --help' to see all available commands, or 'chronograph <command> --help'
for detailed information about a specific command.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
	}

	root.AddCommand(subcommands...)

	// Initialize annotations for version template
	root.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: .chronograph.yaml in the working directory)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	return root
}

// setup loads the configuration, installs the logger and hands the configuration to the
// running command through its context.
func setup(cmd *cobra.Command, opts *rootOptions) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cfg, err := config.Load(opts.configPath, dir)
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Verbose = true
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cmd.SetContext(config.NewContext(cmd.Context(), cfg))
	return nil
}
