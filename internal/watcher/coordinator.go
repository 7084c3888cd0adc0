package watcher

import (
	"context"
	"log"
)

// WatchCoordinator routes file-change and branch-switch events into engine
// rebuilds. The index has no incremental patching, so every settled change
// set triggers invalidate-then-reindex.
type WatchCoordinator struct {
	git    GitWatcher
	files  FileWatcher
	engine Rebuilder
}

// NewWatchCoordinator creates a coordinator. git may be nil when the root
// is not a git repository.
func NewWatchCoordinator(git GitWatcher, files FileWatcher, engine Rebuilder) *WatchCoordinator {
	return &WatchCoordinator{
		git:    git,
		files:  files,
		engine: engine,
	}
}

// Start begins coordinating watchers. Blocks until the context is cancelled
// or a watcher fails to start.
func (c *WatchCoordinator) Start(ctx context.Context) error {
	errCh := make(chan error, 2)

	if c.git != nil {
		go func() {
			if err := c.git.Start(ctx, c.handleBranchSwitch); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		if err := c.files.Start(ctx, c.handleFileChange); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		c.cleanup()
		return err
	case <-ctx.Done():
		c.cleanup()
		return ctx.Err()
	}
}

func (c *WatchCoordinator) cleanup() {
	if c.git != nil {
		if err := c.git.Stop(); err != nil {
			log.Printf("Warning: git watcher stop failed: %v", err)
		}
	}
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleBranchSwitch rebuilds the index for the new working tree. File
// watching pauses during the rebuild so churn from the checkout itself
// doesn't queue redundant rebuilds.
func (c *WatchCoordinator) handleBranchSwitch(oldBranch, newBranch string) {
	log.Printf("Branch switch detected: %s → %s", oldBranch, newBranch)

	c.files.Pause()
	defer c.files.Resume()

	c.rebuild()
}

// handleFileChange rebuilds the index after a settled batch of changes.
func (c *WatchCoordinator) handleFileChange(files []string) {
	if len(files) == 0 {
		return
	}
	log.Printf("Re-indexing after %d file change(s)...", len(files))
	c.rebuild()
}

func (c *WatchCoordinator) rebuild() {
	if err := c.engine.Invalidate(); err != nil {
		log.Printf("Error: failed to invalidate index: %v", err)
		return
	}
	if err := c.engine.Index(context.Background()); err != nil {
		log.Printf("Error: re-index failed: %v", err)
		return
	}
	log.Printf("✓ Index rebuilt")
}
