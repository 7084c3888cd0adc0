package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/git"
	"github.com/reposcope/reposcope/internal/impact"
)

var (
	baseFlag   string
	headFlag   string
	stagedFlag bool
	jsonFlag   bool
)

// impactCmd represents the impact command
var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Analyze the impact of a change set",
	Long: `Impact indexes the repository, obtains a diff from git, and reports
directly changed symbols, transitively affected modules, public API
changes, architectural boundary violations, and an aggregate risk score.

Examples:
  # Analyze staged changes
  reposcope impact --staged

  # Analyze a branch against main
  reposcope impact --base main --head HEAD

  # Machine-readable output
  reposcope impact --base main --json
`,
	RunE: runImpact,
}

func init() {
	rootCmd.AddCommand(impactCmd)
	impactCmd.Flags().StringVar(&baseFlag, "base", "", "base git ref to diff from")
	impactCmd.Flags().StringVar(&headFlag, "head", "HEAD", "head git ref to diff to")
	impactCmd.Flags().BoolVar(&stagedFlag, "staged", false, "analyze staged changes")
	impactCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit the full result as JSON")
}

func runImpact(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot()
	if err != nil {
		return err
	}

	eng, cfg, err := newEngine(rootDir)
	if err != nil {
		return err
	}
	if err := eng.Index(context.Background()); err != nil {
		return err
	}

	gitOps := git.NewOperations()
	diff := resolveDiff(gitOps, rootDir, cfg.Impact.BaseRef, cfg.Impact.UseStage)

	result, err := eng.Analyze(diff)
	if err != nil {
		return err
	}

	if jsonFlag {
		return printJSON(result)
	}

	fmt.Println(riskSummary(result))
	for _, v := range result.BoundaryViolations {
		fmt.Printf("  [%s] %s\n", v.Severity, v.Reason)
	}
	for _, c := range result.PublicAPIChanges {
		fmt.Printf("  [%s] %s in %s\n", c.Kind, c.Name, c.FilePath)
	}
	return nil
}

// resolveDiff picks the change set per flags and config: explicit refs win,
// then --staged, then the configured default base when it exists, then
// staged changes as the last resort.
func resolveDiff(gitOps git.Operations, rootDir, defaultBase string, useStage bool) *impact.DiffRecord {
	switch {
	case baseFlag != "":
		return gitOps.Diff(rootDir, baseFlag, headFlag)
	case stagedFlag:
		return gitOps.StagedDiff(rootDir)
	case !useStage && gitOps.RefExists(rootDir, defaultBase):
		return gitOps.Diff(rootDir, defaultBase, headFlag)
	default:
		return gitOps.StagedDiff(rootDir)
	}
}
