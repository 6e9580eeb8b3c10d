package watch

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/chronograph/cmd/render"
	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/config"
	"github.com/LegacyCodeHQ/chronograph/internal/rendercache"
)

type watchOptions struct {
	inputs render.Inputs
	port   int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		port: config.Default().Port,
	}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the input files and serve a live graph",
		Long: `Watch the dependency, tree-state and diff files, re-render whenever one changes, and
stream the element list to a live view at localhost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputs.DepsPath, "deps", "d", "", "Dependency list file (.json or .yaml)")
	cmd.Flags().StringVarP(&opts.inputs.TreePath, "tree", "t", "", "Tree state file (default: built from the dependency paths at --depth)")
	cmd.Flags().StringVar(&opts.inputs.DiffPath, "diff", "", "Dependency diff file with added, removed and unchanged lists")
	cmd.Flags().StringVar(&opts.inputs.BasePath, "base", "", "Dependency list of the base snapshot to diff against")
	cmd.Flags().IntVarP(&opts.inputs.Depth, "depth", "l", 0, "Folder depth to summarize at when no tree state is given (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "P", opts.port, "HTTP server port")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	cfg := config.FromContext(cmd.Context())
	if !cmd.Flags().Changed("port") {
		opts.port = cfg.Port
	}
	if !cmd.Flags().Changed("depth") {
		opts.inputs.Depth = cfg.Depth
	}
	if err := opts.inputs.Validate(); err != nil {
		return err
	}

	normalizer, err := cfg.Normalizer()
	if err != nil {
		return err
	}
	cache, err := rendercache.New(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("failed to create render cache: %w", err)
	}

	b := newBroker()
	r := &renderer{
		inputs:     opts.inputs,
		normalizer: normalizer,
		cache:      cache,
		sink:       depgraph.SlogSink{Logger: slog.Default()},
		broker:     b,
		timeline:   newTimeline(),
	}
	srv := newServer(b, opts.port)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
	}

	go srv.Serve(ln)

	if err := r.publish(); err != nil {
		srv.Close()
		return fmt.Errorf("initial graph build failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", opts.inputs.DepsPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", opts.port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, r)

	srv.Close()
	hits, misses := cache.Stats()
	slog.Debug("watch stopped", "cacheHits", hits, "cacheMisses", misses, "clients", b.clientCount())
	return err
}
