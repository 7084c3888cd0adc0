// Package cli implements the reposcope command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/config"
	"github.com/reposcope/reposcope/internal/engine"
	"github.com/reposcope/reposcope/internal/impact"
	"github.com/reposcope/reposcope/internal/memory"
)

var (
	rootDirFlag string
	quietFlag   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reposcope",
	Short: "Repository indexing and change-impact analysis",
	Long: `Reposcope indexes a repository's source files, builds a cross-file
symbol map and import dependency graph, and analyzes the blast radius
of change sets: affected modules, public API changes, architectural
boundary violations, and an aggregate risk score.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDirFlag, "root", "", "repository root (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
}

// resolveRoot returns the repository root to operate on.
func resolveRoot() (string, error) {
	if rootDirFlag != "" {
		return rootDirFlag, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// newEngine loads configuration and constructs an engine for rootDir,
// installing the architecture model when one is configured.
func newEngine(rootDir string) (*engine.Engine, *config.Config, error) {
	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	eng, err := engine.New(rootDir,
		engine.WithProgress(NewCLIProgressReporter(quietFlag)),
		engine.WithMaxHops(cfg.Impact.MaxHops),
		engine.WithIgnorePatterns(cfg.Paths.Ignore),
	)
	if err != nil {
		return nil, nil, err
	}

	model, err := memory.LoadArchitecture(rootDir)
	if err != nil {
		return nil, nil, err
	}
	if model != nil {
		eng.SetArchitecture(model)
	}
	return eng, cfg, nil
}

// indexedEngine builds an engine for the resolved root and indexes it.
func indexedEngine() (*engine.Engine, error) {
	rootDir, err := resolveRoot()
	if err != nil {
		return nil, err
	}
	eng, _, err := newEngine(rootDir)
	if err != nil {
		return nil, err
	}
	if err := eng.Index(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// riskSummary is the human-readable one-liner for an impact result.
func riskSummary(result *impact.Result) string {
	return fmt.Sprintf("risk %.0f/100 (%s): %d changed symbols, %d affected modules, %d API changes, %d violations",
		result.RiskScore, result.RiskLevel,
		len(result.DirectlyChanged), len(result.AffectedModules),
		len(result.PublicAPIChanges), len(result.BoundaryViolations))
}
