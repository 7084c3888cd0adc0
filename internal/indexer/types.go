package indexer

import (
	"time"

	"github.com/reposcope/reposcope/internal/lang"
)

// FileRecord is the extraction result for one indexed file, keyed in the
// index by its normalized (forward-slash, repo-relative) path. Records are
// immutable once produced; a re-index rebuilds the full set.
type FileRecord struct {
	Path      string            `json:"path"`
	Language  string            `json:"language"`
	Size      int64             `json:"size"`
	Lines     int               `json:"lines"`
	Symbols   []lang.Symbol     `json:"symbols"`
	Imports   []lang.ImportSpec `json:"imports"`
	Exports   []lang.ExportSpec `json:"exports"`
}

// Stats aggregates what an index pass produced.
type Stats struct {
	FilesIndexed int           `json:"files_indexed"`
	FilesSkipped int           `json:"files_skipped"`
	SymbolCount  int           `json:"symbol_count"`
	ExportCount  int           `json:"export_count"`
	ImportCount  int           `json:"import_count"`
	Duration     time.Duration `json:"duration"`
}

// Result is the completed output of one index pass.
type Result struct {
	Files map[string]*FileRecord
	Stats Stats
}

// ProgressReporter receives progress callbacks during indexing.
type ProgressReporter interface {
	OnDiscoveryComplete(totalFiles int)
	OnFileIndexed(processed, total int, path string)
	OnIndexComplete(stats Stats)
}

// NoOpProgressReporter ignores all progress events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(int)        {}
func (NoOpProgressReporter) OnFileIndexed(int, int, string) {}
func (NoOpProgressReporter) OnIndexComplete(Stats)          {}
