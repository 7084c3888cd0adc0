package git

import "github.com/reposcope/reposcope/internal/impact"

// MockGitOps is a mock implementation of Operations for testing.
type MockGitOps struct {
	DiffRecord   *impact.DiffRecord
	StagedRecord *impact.DiffRecord
	Refs         map[string]bool
	Branch       string
	Root         string
}

// NewMockGitOps creates a mock with sensible defaults.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		DiffRecord:   &impact.DiffRecord{},
		StagedRecord: &impact.DiffRecord{},
		Refs:         map[string]bool{"main": true, "HEAD": true},
		Branch:       "main",
		Root:         "/tmp/test-repo",
	}
}

func (m *MockGitOps) Diff(repoPath, base, head string) *impact.DiffRecord {
	if m.DiffRecord == nil {
		return &impact.DiffRecord{}
	}
	return m.DiffRecord
}

func (m *MockGitOps) StagedDiff(repoPath string) *impact.DiffRecord {
	if m.StagedRecord == nil {
		return &impact.DiffRecord{}
	}
	return m.StagedRecord
}

func (m *MockGitOps) RefExists(repoPath, ref string) bool {
	return m.Refs[ref]
}

func (m *MockGitOps) CurrentBranch(repoPath string) string {
	return m.Branch
}

func (m *MockGitOps) WorktreeRoot(repoPath string) string {
	return m.Root
}
