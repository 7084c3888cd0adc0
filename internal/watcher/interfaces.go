// Package watcher keeps a long-running engine current: it monitors source
// files and the git HEAD, and triggers a full re-index after changes settle.
package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching the repository, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// GitWatcher monitors .git/HEAD for branch switches.
type GitWatcher interface {
	// Start begins monitoring, calling callback on each branch change.
	Start(ctx context.Context, callback func(oldBranch, newBranch string)) error

	// Stop stops the watcher and cleans up resources.
	Stop() error
}

// Rebuilder is the minimal engine surface the coordinator drives: discard
// the current index, then build a fresh one.
type Rebuilder interface {
	Invalidate() error
	Index(ctx context.Context) error
}
