package git

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/reposcope/reposcope/internal/impact"
)

// ParseUnifiedDiff converts raw unified diff output into a DiffRecord. An
// empty input yields an empty record, not an error.
func ParseUnifiedDiff(raw []byte) (*impact.DiffRecord, error) {
	if len(raw) == 0 {
		return &impact.DiffRecord{}, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	record := &impact.DiffRecord{Files: make([]impact.DiffFile, 0, len(fileDiffs))}
	for _, fd := range fileDiffs {
		df := impact.DiffFile{
			Path:   diffPath(fd),
			Status: diffStatus(fd),
		}
		for _, h := range fd.Hunks {
			hunk := impact.Hunk{
				OldStart: int(h.OrigStartLine),
				OldLines: int(h.OrigLines),
				NewStart: int(h.NewStartLine),
				NewLines: int(h.NewLines),
			}
			for _, line := range strings.Split(strings.TrimSuffix(string(h.Body), "\n"), "\n") {
				hunk.Lines = append(hunk.Lines, line)
				if line == "" {
					continue
				}
				switch line[0] {
				case '+':
					df.Additions++
				case '-':
					df.Deletions++
				}
			}
			df.Hunks = append(df.Hunks, hunk)
		}
		record.Files = append(record.Files, df)
	}
	return record, nil
}

// diffPath returns the repo-relative path of a changed file, preferring the
// post-change name so the path matches the indexed working tree.
func diffPath(fd *godiff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	name = strings.TrimPrefix(name, "b/")
	name = strings.TrimPrefix(name, "a/")
	return name
}

func diffStatus(fd *godiff.FileDiff) impact.DiffStatus {
	switch {
	case fd.OrigName == "/dev/null":
		return impact.DiffAdded
	case fd.NewName == "/dev/null":
		return impact.DiffDeleted
	default:
		return impact.DiffModified
	}
}
