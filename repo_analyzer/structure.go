package repo_analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/meysamhadeli/repoctx/utils"
)

// BuildStructure walks rootDir into a nested tree, leaving out hidden entries and build caches.
// Symlinks are recorded as files and never followed.
func (analyzer *RepoAnalyzer) BuildStructure(rootDir string) (models.Tree, error) {
	structure := models.NewTree()
	if err := buildStructure(rootDir, &structure); err != nil {
		return models.Tree{}, models.NewError(models.KindWalk, "build structure", err)
	}
	return structure, nil
}

func buildStructure(dir string, current *models.Tree) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if utils.IsSkippedEntry(entry.Name()) {
			continue
		}

		if entry.IsDir() {
			sub := current.AddDir(entry.Name())
			if err := buildStructure(filepath.Join(dir, entry.Name()), sub); err != nil {
				return err
			}
			continue
		}

		current.AddFile(entry.Name())
	}

	return nil
}
