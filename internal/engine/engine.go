// Package engine wires the provider registry, indexer, symbol map,
// dependency graph, and impact analyzer into one lifecycle: construct,
// index once, then serve read-only queries until invalidated.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/impact"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/lang"
	"github.com/reposcope/reposcope/internal/symbols"
)

// ErrNotIndexed is returned by queries issued before Index has completed.
// Calling query methods on an unindexed engine is a caller contract
// violation, not a transient condition.
var ErrNotIndexed = errors.New("repository not indexed; call Index first")

// Engine owns one repository's index and derived structures. Index may be
// called concurrently; all callers join the same in-flight build. Queries
// are read-only and safe to run concurrently with each other, but never
// overlap a rebuild.
type Engine struct {
	rootDir  string
	registry *lang.Registry
	progress indexer.ProgressReporter
	maxHops  int
	ignore   []string

	flight singleflight.Group

	mu       sync.RWMutex
	indexer  *indexer.Indexer
	buildID  string
	files    map[string]*indexer.FileRecord
	stats    indexer.Stats
	graph    *depgraph.Graph
	symbols  *symbols.Map
	analyzer *impact.Analyzer
	arch     *impact.ArchitectureModel
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress configures progress reporting for index passes.
func WithProgress(progress indexer.ProgressReporter) Option {
	return func(e *Engine) {
		e.progress = progress
	}
}

// WithMaxHops bounds the impact analyzer's blast-radius search.
func WithMaxHops(hops int) Option {
	return func(e *Engine) {
		if hops >= 1 {
			e.maxHops = hops
		}
	}
}

// WithIgnorePatterns adds repo-specific ignore globs on top of the built-in
// ignore set.
func WithIgnorePatterns(patterns []string) Option {
	return func(e *Engine) {
		e.ignore = append(e.ignore, patterns...)
	}
}

// New creates an engine for rootDir. Nothing is scanned until Index.
func New(rootDir string, opts ...Option) (*Engine, error) {
	e := &Engine{
		rootDir:  rootDir,
		registry: lang.NewRegistry(),
		progress: &indexer.NoOpProgressReporter{},
		maxHops:  depgraph.DefaultMaxHops,
	}
	for _, opt := range opts {
		opt(e)
	}

	idx, err := e.newIndexer()
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer: %w", err)
	}
	e.indexer = idx
	return e, nil
}

func (e *Engine) newIndexer() (*indexer.Indexer, error) {
	return indexer.New(e.rootDir, e.registry,
		indexer.WithProgress(e.progress),
		indexer.WithIgnorePatterns(e.ignore))
}

// Index scans the repository and builds the symbol map, dependency graph,
// and impact analyzer. Concurrent callers join the same pass. After the
// first success, Index is a no-op until Invalidate.
func (e *Engine) Index(ctx context.Context) error {
	_, err, _ := e.flight.Do("index", func() (interface{}, error) {
		e.mu.RLock()
		idx := e.indexer
		done := e.graph != nil
		e.mu.RUnlock()
		if done {
			return nil, nil
		}

		result, err := idx.Index(ctx)
		if err != nil {
			return nil, fmt.Errorf("index failed: %w", err)
		}

		graph := depgraph.Build(result.Files, e.registry)
		syms := symbols.Build(result.Files)

		e.mu.Lock()
		defer e.mu.Unlock()
		e.files = result.Files
		e.stats = result.Stats
		e.graph = graph
		e.symbols = syms
		e.analyzer = impact.NewAnalyzer(result.Files, graph, syms, e.registry,
			impact.WithMaxHops(e.maxHops))
		if e.arch != nil {
			e.analyzer.SetArchitecture(e.arch)
		}
		e.buildID = uuid.New().String()
		return nil, nil
	})
	return err
}

// Invalidate discards the current index so the next Index call rebuilds
// from scratch. Used by the file-watch collaborator on relevant changes.
func (e *Engine) Invalidate() error {
	idx, err := e.newIndexer()
	if err != nil {
		return fmt.Errorf("failed to reset indexer: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.indexer = idx
	e.buildID = ""
	e.files = nil
	e.stats = indexer.Stats{}
	e.graph = nil
	e.symbols = nil
	e.analyzer = nil
	return nil
}

// BuildID identifies the current index build; empty before the first Index.
func (e *Engine) BuildID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buildID
}

// SetArchitecture installs an architecture model for boundary checking. It
// survives re-indexing. A non-nil model, even empty, disables the fallback
// heuristic.
func (e *Engine) SetArchitecture(model *impact.ArchitectureModel) {
	if model == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arch = model
	if e.analyzer != nil {
		e.analyzer.SetArchitecture(model)
	}
}

// Files returns the indexed FileRecord map. Callers must treat it as
// read-only.
func (e *Engine) Files() (map[string]*indexer.FileRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.files == nil {
		return nil, ErrNotIndexed
	}
	return e.files, nil
}

// Stats returns the aggregate stats of the current index.
func (e *Engine) Stats() (indexer.Stats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.files == nil {
		return indexer.Stats{}, ErrNotIndexed
	}
	return e.stats, nil
}

// Graph returns the dependency graph built from the current index.
func (e *Engine) Graph() (*depgraph.Graph, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.graph == nil {
		return nil, ErrNotIndexed
	}
	return e.graph, nil
}

// Symbols returns the repo-wide symbol map.
func (e *Engine) Symbols() (*symbols.Map, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.symbols == nil {
		return nil, ErrNotIndexed
	}
	return e.symbols, nil
}

// DumpGraph returns the graph as a plain nodes/edges object for consumers.
func (e *Engine) DumpGraph() (*depgraph.Dump, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.graph == nil {
		return nil, ErrNotIndexed
	}
	return e.graph.DumpGraph(), nil
}

// Cycles returns every distinct import cycle in the current graph.
func (e *Engine) Cycles() ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.graph == nil {
		return nil, ErrNotIndexed
	}
	return e.graph.DetectCycles(), nil
}

// Orphans returns every exported symbol with zero fan-in.
func (e *Engine) Orphans() ([]lang.Symbol, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.symbols == nil {
		return nil, ErrNotIndexed
	}
	return e.symbols.Orphans(e.graph), nil
}

// Analyze computes the impact of diff against the current index. It holds
// only a read lock, so analyses run concurrently with each other but never
// with a rebuild.
func (e *Engine) Analyze(diff *impact.DiffRecord) (*impact.Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.analyzer == nil {
		return nil, ErrNotIndexed
	}
	return e.analyzer.Analyze(diff), nil
}
