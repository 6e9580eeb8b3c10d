package watch

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/chronograph/cmd/render"
	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/LegacyCodeHQ/chronograph/internal/rendercache"
)

const sampleDeps = `[{"source_file": "main.dart", "target_file": "lib/a.dart"}]`

func newTestRenderer(t *testing.T, depsPath string) *renderer {
	t.Helper()
	cache, err := rendercache.New(8)
	require.NoError(t, err)
	return &renderer{
		inputs:     render.Inputs{DepsPath: depsPath, Depth: 1},
		normalizer: depgraph.DefaultPathNormalizer(),
		cache:      cache,
		broker:     newBroker(),
		timeline:   newTimeline(),
	}
}

func receiveSnapshot(t *testing.T, ch chan frame, timeout time.Duration) graphSnapshot {
	t.Helper()
	select {
	case got := <-ch:
		var doc graphSnapshot
		require.NoError(t, json.Unmarshal([]byte(got.data), &doc))
		return doc
	case <-time.After(timeout):
		t.Fatal("timed out waiting for graph snapshot")
		return graphSnapshot{}
	}
}

func TestRenderer_PublishMemoizesUnchangedInputs(t *testing.T) {
	deps := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, os.WriteFile(deps, []byte(sampleDeps), 0o644))

	r := newTestRenderer(t, deps)
	ch := r.broker.subscribe(0)
	defer r.broker.unsubscribe(ch)

	require.NoError(t, r.publish())
	first := receiveSnapshot(t, ch, time.Second)
	assert.Equal(t, int64(1), first.ID)
	assert.False(t, first.Cached)
	assert.Len(t, first.Elements, 3)

	require.NoError(t, r.publish())
	second := receiveSnapshot(t, ch, time.Second)
	assert.Equal(t, int64(2), second.ID)
	assert.True(t, second.Cached)

	require.NoError(t, os.WriteFile(deps, []byte(`[]`), 0o644))
	require.NoError(t, r.publish())
	third := receiveSnapshot(t, ch, time.Second)
	assert.False(t, third.Cached)
	assert.Empty(t, third.Elements)
}

func TestRenderer_PublishKeepsLastGraphOnError(t *testing.T) {
	deps := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, os.WriteFile(deps, []byte(sampleDeps), 0o644))

	r := newTestRenderer(t, deps)
	require.NoError(t, r.publish())
	latest := r.broker.latest

	require.NoError(t, os.WriteFile(deps, []byte(`{not json`), 0o644))
	assert.Error(t, r.publish())
	assert.Equal(t, latest, r.broker.latest)
}

func TestWatchAndRebuild_PublishesOnInputChange(t *testing.T) {
	deps := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, os.WriteFile(deps, []byte(`[]`), 0o644))

	r := newTestRenderer(t, deps)
	ch := r.broker.subscribe(0)
	defer r.broker.unsubscribe(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchAndRebuild(ctx, r) }()

	deadline := time.After(5 * time.Second)
	var got graphSnapshot
	for got.ID == 0 {
		require.NoError(t, os.WriteFile(deps, []byte(sampleDeps), 0o644))
		select {
		case raw := <-ch:
			require.NoError(t, json.Unmarshal([]byte(raw.data), &got))
		case <-time.After(debounceInterval + 200*time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for rebuild after input change")
		}
	}

	assert.Len(t, got.Elements, 3)

	cancel()
	require.NoError(t, <-done)
}

func TestIsRelevantChange(t *testing.T) {
	dir := t.TempDir()
	deps := filepath.Join(dir, "deps.json")
	watched := map[string]bool{deps: true}

	assert.True(t, isRelevantChange(fsnotify.Event{Name: deps, Op: fsnotify.Write}, watched))
	assert.True(t, isRelevantChange(fsnotify.Event{Name: deps, Op: fsnotify.Rename}, watched))
	assert.False(t, isRelevantChange(fsnotify.Event{Name: deps, Op: fsnotify.Chmod}, watched))
	assert.False(t, isRelevantChange(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, watched))
}

func TestWatchInputDirs_WatchesEachDirectoryOnce(t *testing.T) {
	files := map[string]bool{
		"/work/deps.json":     true,
		"/work/tree.json":     true,
		"/work/base/old.json": true,
	}

	var added []string
	err := watchInputDirs(files, func(path string) error {
		added = append(added, path)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/work", "/work/base"}, added)
}

func TestWatchInputDirs_SkipsMissingDirectories(t *testing.T) {
	files := map[string]bool{"/gone/deps.json": true, "/work/tree.json": true}

	var added []string
	err := watchInputDirs(files, func(path string) error {
		if path == "/gone" {
			return fs.ErrNotExist
		}
		added = append(added, path)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/work"}, added)
}

func TestWatchInputDirs_PropagatesOtherErrors(t *testing.T) {
	boom := errors.New("too many open files")
	err := watchInputDirs(map[string]bool{"/work/deps.json": true}, func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
}
