// Package memory loads the optional architecture model from the repo's
// .reposcope directory. The core never parses YAML itself; this collaborator
// hands it a ready ArchitectureModel or nothing.
package memory

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/reposcope/reposcope/internal/impact"
)

// ArchitectureFile is the repo-relative location of the architecture model.
const ArchitectureFile = ".reposcope/architecture.yml"

// LoadArchitecture reads rootDir's architecture model. A missing file means
// no model was configured and returns (nil, nil); the caller then leaves the
// analyzer's fallback heuristic active. A malformed file is logged and
// treated as absent, never fatal. A file that parses (even to an empty
// model) returns a non-nil model, which disables the fallback.
func LoadArchitecture(rootDir string) (*impact.ArchitectureModel, error) {
	path := filepath.Join(rootDir, filepath.FromSlash(ArchitectureFile))
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read architecture model: %w", err)
	}

	var model impact.ArchitectureModel
	if err := yaml.Unmarshal(raw, &model); err != nil {
		log.Printf("Warning: malformed architecture model %s: %v", path, err)
		return nil, nil
	}
	return &model, nil
}
