package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/lang"
	"github.com/reposcope/reposcope/internal/watcher"
)

var watchFlag bool

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the repository",
	Long: `Index scans the repository, extracts imports, exports, and symbols from
every recognized source file, and builds the dependency graph and symbol map.

Examples:
  # Index the current directory
  reposcope index

  # Index without progress output
  reposcope index --quiet

  # Keep the index current as files change
  reposcope index --watch
`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and re-index")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling...")
		cancel()
	}()

	rootDir, err := resolveRoot()
	if err != nil {
		return err
	}

	eng, cfg, err := newEngine(rootDir)
	if err != nil {
		return err
	}

	if err := eng.Index(ctx); err != nil {
		return err
	}

	if !quietFlag {
		if g, err := eng.Graph(); err == nil {
			fmt.Printf("Dependency graph: %d modules, %d import edges\n",
				g.NodeCount(), g.EdgeCount())
		}
	}

	if !watchFlag {
		return nil
	}

	fw, err := watcher.NewFileWatcher(rootDir, watchExtensions(),
		time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	var gw watcher.GitWatcher
	if gitDir := filepath.Join(rootDir, ".git"); dirExists(gitDir) {
		gw, err = watcher.NewGitWatcher(gitDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: git watching disabled: %v\n", err)
			gw = nil
		}
	}

	coord := watcher.NewWatchCoordinator(gw, fw, eng)
	if !quietFlag {
		fmt.Println("Watching for changes (Ctrl+C to stop)...")
	}
	if err := coord.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// watchExtensions is the union of every provider's source extensions.
func watchExtensions() []string {
	var exts []string
	for _, p := range lang.NewRegistry().Providers() {
		exts = append(exts, p.Extensions()...)
	}
	return exts
}
