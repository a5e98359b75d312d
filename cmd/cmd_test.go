package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/repoctx/config"
	"github.com/meysamhadeli/repoctx/context_store"
	"github.com/meysamhadeli/repoctx/logger"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeError(t *testing.T) {
	missing := models.NewError(models.KindCredential, "load token", models.ErrMissingToken)
	assert.Equal(t, "please set the GITHUB_TOKEN environment variable", describeError(missing))

	fetch := models.NewError(models.KindFetch, "clone repository", errors.New("not found"))
	assert.Contains(t, describeError(fetch), "Failed to clone repository")

	assert.Equal(t, "Error: boom", describeError(errors.New("boom")))
}

func TestHandleAnalyzeCommand_MissingTokenFailsFast(t *testing.T) {
	workDir := t.TempDir()
	cfg := config.DefaultConfig
	cfg.RepoURL = "https://github.com/acme/widgets"
	cfg.WorkDir = workDir
	cfg.GithubToken = ""

	err := handleAnalyzeCommand(&RootDependencies{Config: &cfg, Logger: logger.Discard()})

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindCredential))
	assert.NoDirExists(t, filepath.Join(workDir, "temp_repo_main"))
}

func TestTopImports(t *testing.T) {
	files := []models.FileContext{
		{Imports: []string{"os", "sys", "os"}},
		{Imports: []string{"sys", "json", "os"}},
	}

	top := topImports(files, 2)

	assert.Equal(t, []importCount{{name: "os", count: 3}, {name: "sys", count: 2}}, top)
}

func TestHandleShowCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig
	cfg.Snapshot = filepath.Join(dir, "ctx.gob")
	cfg.Output = filepath.Join(dir, "ctx.json")

	structure := models.NewTree()
	structure.AddFile("a.py")
	store := context_store.NewContextStore(cfg.Snapshot, cfg.Output)
	require.NoError(t, store.Save(&models.RepoContext{
		RepoName:      "widgets",
		Branch:        "main",
		Files:         []models.FileContext{{Path: "a.py", Language: "python", Imports: []string{"os"}}},
		Structure:     structure,
		MainLanguages: []string{"python"},
	}))

	deps := &RootDependencies{Config: &cfg, Logger: logger.Discard()}
	assert.NoError(t, handleShowCommand(deps, false))
	assert.NoError(t, handleShowCommand(deps, true))

	cfg.Snapshot = filepath.Join(dir, "missing.gob")
	assert.Error(t, handleShowCommand(deps, false))
}
