// Package git supplies change sets to the impact analyzer by shelling out
// to the git binary. Any git failure degrades to an empty diff; the core
// never treats git unavailability as fatal.
package git

import (
	"log"
	"os/exec"
	"strings"

	"github.com/reposcope/reposcope/internal/impact"
)

// Operations defines the interface for git access.
// This allows mocking git commands in tests.
type Operations interface {
	// Diff returns the change set between base and head. Returns an empty
	// record (never nil) when git fails or the refs do not exist.
	Diff(repoPath, base, head string) *impact.DiffRecord

	// StagedDiff returns the currently staged change set. Returns an empty
	// record (never nil) when git fails or nothing is staged.
	StagedDiff(repoPath string) *impact.DiffRecord

	// RefExists reports whether ref resolves in the repository.
	RefExists(repoPath, ref string) bool

	// CurrentBranch returns the current branch name.
	// For detached HEAD, returns "detached-{short-hash}".
	// Returns "unknown" if all git commands fail.
	CurrentBranch(repoPath string) string

	// WorktreeRoot returns the git worktree root path.
	// Falls back to repoPath if not a git repository.
	WorktreeRoot(repoPath string) string
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) Diff(repoPath, base, head string) *impact.DiffRecord {
	cmd := exec.Command("git", "diff", "--no-color", base, head)
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		log.Printf("Warning: git diff %s..%s failed: %v", base, head, err)
		return &impact.DiffRecord{}
	}
	return parseOrEmpty(output)
}

func (g *gitOps) StagedDiff(repoPath string) *impact.DiffRecord {
	cmd := exec.Command("git", "diff", "--no-color", "--cached")
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		log.Printf("Warning: git diff --cached failed: %v", err)
		return &impact.DiffRecord{}
	}
	return parseOrEmpty(output)
}

func (g *gitOps) RefExists(repoPath, ref string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", ref)
	cmd.Dir = repoPath
	return cmd.Run() == nil
}

func (g *gitOps) CurrentBranch(repoPath string) string {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil || len(strings.TrimSpace(string(output))) == 0 {
		// Might be detached HEAD
		cmd = exec.Command("git", "rev-parse", "--short", "HEAD")
		cmd.Dir = repoPath
		output, err = cmd.Output()
		if err != nil {
			return "unknown"
		}
		return "detached-" + strings.TrimSpace(string(output))
	}
	return strings.TrimSpace(string(output))
}

func (g *gitOps) WorktreeRoot(repoPath string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		return repoPath
	}
	return strings.TrimSpace(string(output))
}

func parseOrEmpty(raw []byte) *impact.DiffRecord {
	record, err := ParseUnifiedDiff(raw)
	if err != nil {
		log.Printf("Warning: failed to parse diff output: %v", err)
		return &impact.DiffRecord{}
	}
	return record
}
