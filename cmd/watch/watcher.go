package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LegacyCodeHQ/chronograph/cmd/render"
	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/rendercache"
)

const debounceInterval = 300 * time.Millisecond

// renderer rebuilds the graph for the watched inputs and publishes it to the broker.
// Results are memoized by input content, so saving a file without changing it, or
// reverting an edit, does not rerun the transform.
type renderer struct {
	inputs     render.Inputs
	normalizer *depgraph.PathNormalizer
	cache      *rendercache.Cache
	sink       depgraph.DiagnosticsSink
	broker     *broker

	mu       sync.Mutex
	timeline *timeline
}

func (r *renderer) publish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, err := r.inputs.Key(r.normalizer)
	if err != nil {
		return err
	}

	result, cached, err := r.cache.GetOrCompute(key, func() (depgraph.Result, error) {
		snap, err := r.inputs.Load(r.normalizer)
		if err != nil {
			return depgraph.Result{}, err
		}
		return snap.Transform(r.normalizer, r.sink), nil
	})
	if err != nil {
		return err
	}
	slog.Debug("graph rebuilt", "nodes", len(result.Nodes), "edges", len(result.Edges), "cached", cached)

	f, err := r.timeline.encode(result, cached)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	r.broker.publish(f)
	return nil
}

func watchAndRebuild(ctx context.Context, r *renderer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := absolutePaths(r.inputs.Paths())
	if err != nil {
		return err
	}
	if err := watchInputDirs(watched, watcher.Add); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, watched) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				if err := r.publish(); err != nil {
					slog.Error("graph rebuild failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func absolutePaths(paths []string) (map[string]bool, error) {
	abs := make(map[string]bool, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		abs[filepath.Clean(a)] = true
	}
	return abs, nil
}

// isRelevantChange reports content changes to one of the input files. Editors often save by
// renaming a temporary file over the original, so creates and renames count too.
func isRelevantChange(event fsnotify.Event, watched map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return watched[filepath.Clean(abs)]
}

// watchInputDirs watches the directory of every input file once. Directories that vanished
// in the meantime are skipped.
func watchInputDirs(files map[string]bool, add func(string) error) error {
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}

	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	for _, d := range sorted {
		if err := add(d); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
