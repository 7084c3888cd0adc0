// Package indexer walks a repository, dispatches every file to its language
// provider, and assembles the path → FileRecord map the rest of the pipeline
// consumes. Per-file extraction runs on a bounded worker pool; results merge
// single-threaded at the join point, so no shared map is mutated
// concurrently.
package indexer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/reposcope/reposcope/internal/lang"
)

// Indexer produces the FileRecord map for one repository root. Index is
// guarded: concurrent callers join one in-flight pass, and once a pass has
// succeeded, later calls return the completed result without rescanning.
// Construct a fresh Indexer to rebuild.
type Indexer struct {
	rootDir     string
	registry    *lang.Registry
	discovery   *FileDiscovery
	progress    ProgressReporter
	extraIgnore []string

	flight singleflight.Group

	mu     sync.RWMutex
	result *Result
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) Option {
	return func(idx *Indexer) {
		idx.progress = progress
	}
}

// WithIgnorePatterns adds repo-specific ignore globs on top of the built-in
// ignore set.
func WithIgnorePatterns(patterns []string) Option {
	return func(idx *Indexer) {
		idx.extraIgnore = append(idx.extraIgnore, patterns...)
	}
}

// New creates an indexer for rootDir using the given provider registry.
func New(rootDir string, registry *lang.Registry, opts ...Option) (*Indexer, error) {
	idx := &Indexer{
		rootDir:  rootDir,
		registry: registry,
		progress: NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(idx)
	}

	ignore := append(append([]string{}, lang.IgnorePatterns...), idx.extraIgnore...)
	discovery, err := NewFileDiscovery(rootDir, registry.DiscoveryPatterns(), ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}
	idx.discovery = discovery
	return idx, nil
}

// Index scans the repository and returns the completed FileRecord map and
// aggregate stats. Safe for concurrent use: callers racing the first pass
// await the same in-flight scan.
func (idx *Indexer) Index(ctx context.Context) (*Result, error) {
	idx.mu.RLock()
	if res := idx.result; res != nil {
		idx.mu.RUnlock()
		return res, nil
	}
	idx.mu.RUnlock()

	v, err, _ := idx.flight.Do("index", func() (interface{}, error) {
		res, err := idx.scan(ctx)
		if err != nil {
			return nil, err
		}
		idx.mu.Lock()
		idx.result = res
		idx.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// Result returns the completed index, or nil if Index has not succeeded yet.
func (idx *Indexer) Result() *Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.result
}

// fileOutcome is one worker's output: either a record or a skip.
type fileOutcome struct {
	record  *FileRecord
	skipped bool
}

func (idx *Indexer) scan(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	paths, err := idx.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	idx.progress.OnDiscoveryComplete(len(paths))

	// Workers write only to their own slot; the merge below is the single
	// join point.
	outcomes := make([]fileOutcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var processed int64
	var processedMu sync.Mutex

	for i, relPath := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			record, ok := idx.extractFile(relPath)
			if ok {
				outcomes[i] = fileOutcome{record: record}
			} else {
				outcomes[i] = fileOutcome{skipped: true}
			}

			processedMu.Lock()
			processed++
			n := processed
			processedMu.Unlock()
			idx.progress.OnFileIndexed(int(n), len(paths), relPath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: make(map[string]*FileRecord, len(paths))}
	for _, out := range outcomes {
		if out.skipped {
			res.Stats.FilesSkipped++
			continue
		}
		if out.record == nil {
			continue
		}
		res.Files[out.record.Path] = out.record
		res.Stats.FilesIndexed++
		res.Stats.SymbolCount += len(out.record.Symbols)
		res.Stats.ExportCount += len(out.record.Exports)
		res.Stats.ImportCount += len(out.record.Imports)
	}
	res.Stats.Duration = time.Since(startTime)

	idx.progress.OnIndexComplete(res.Stats)
	return res, nil
}

// extractFile reads and extracts one file. Unreadable files and files with
// no provider are skipped, never fatal.
func (idx *Indexer) extractFile(relPath string) (*FileRecord, bool) {
	provider := idx.registry.ForPath(relPath)
	if provider == nil {
		return nil, false
	}

	fullPath := filepath.Join(idx.rootDir, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		log.Printf("Warning: skipping unreadable file %s: %v", relPath, err)
		return nil, false
	}

	text := string(content)
	return &FileRecord{
		Path:     relPath,
		Language: provider.ID(),
		Size:     int64(len(content)),
		Lines:    countLines(text),
		Symbols:  provider.ExtractSymbols(relPath, text),
		Imports:  provider.ExtractImports(text),
		Exports:  provider.ExtractExports(text),
	}, true
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
