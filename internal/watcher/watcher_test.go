package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the watcher package:
// - File changes fire one debounced callback with the changed files
// - Non-monitored extensions are ignored
// - Pause accumulates; Resume fires the backlog
// - parseBranch handles symbolic refs and detached HEAD
// - The coordinator invalidates and re-indexes on file changes

func TestFileWatcher_DebouncedCallback(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(dir, []string{".ts"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	var got []string
	require.NoError(t, fw.Start(context.Background(), func(files []string) {
		mu.Lock()
		got = append(got, files...)
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export const a = 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, got, filepath.Join(dir, "a.ts"))
	assert.NotContains(t, got, filepath.Join(dir, "notes.txt"))
}

func TestFileWatcher_PauseResume(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(dir, []string{".ts"}, 30*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	fired := 0
	require.NoError(t, fw.Start(context.Background(), func(files []string) {
		mu.Lock()
		fired++
		mu.Unlock()
	}))

	fw.Pause()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 0, fired, "paused watcher does not fire")
	mu.Unlock()

	fw.Resume()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired == 1
	}, 3*time.Second, 20*time.Millisecond, "resume flushes the backlog")
}

func TestParseBranch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "main", parseBranch([]byte("ref: refs/heads/main\n")))
	assert.Equal(t, "feature/auth", parseBranch([]byte("ref: refs/heads/feature/auth\n")))
	assert.Equal(t, "detached", parseBranch([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n")))
}

// fakeRebuilder records Invalidate/Index calls.
type fakeRebuilder struct {
	mu          sync.Mutex
	invalidated int
	indexed     int
}

func (f *fakeRebuilder) Invalidate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	return nil
}

func (f *fakeRebuilder) Index(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed++
	return nil
}

func TestCoordinator_FileChangeTriggersRebuild(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(dir, []string{".ts"}, 30*time.Millisecond)
	require.NoError(t, err)

	engine := &fakeRebuilder{}
	coord := NewWatchCoordinator(nil, fw, engine)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = coord.Start(ctx)
		close(done)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export const a = 1;\n"), 0o644))

	require.Eventually(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.invalidated >= 1 && engine.indexed >= 1
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}
