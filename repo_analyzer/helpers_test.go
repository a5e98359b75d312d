package repo_analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/repoctx/logger"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files (slash-separated relative path -> content) below root.
// A path ending in "/" creates an empty directory.
func writeFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for relativePath, content := range files {
		path := filepath.Join(root, filepath.FromSlash(relativePath))
		if relativePath[len(relativePath)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// fakeFetcher "clones" a fixed file set and records calls.
type fakeFetcher struct {
	t        testing.TB
	files    map[string]string
	err      error
	clones   int
	cleaned  []string
	revision string
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, _ string, destPath string) error {
	if f.err != nil {
		return f.err
	}
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}
	f.clones++
	require.NoError(f.t, os.MkdirAll(destPath, 0755))
	writeFiles(f.t, destPath, f.files)
	return nil
}

func (f *fakeFetcher) Revision(context.Context, string) (string, error) {
	return f.revision, nil
}

func (f *fakeFetcher) Cleanup(destPath string) error {
	f.cleaned = append(f.cleaned, destPath)
	return os.RemoveAll(destPath)
}

type fakeMetadata struct {
	owner, repo string
	metadata    *models.RepoMetadata
	err         error
}

func (m *fakeMetadata) RepositoryMetadata(_ context.Context, owner string, repo string) (*models.RepoMetadata, error) {
	m.owner, m.repo = owner, repo
	return m.metadata, m.err
}

type memoryStore struct {
	saved *models.RepoContext
	err   error
}

func (s *memoryStore) Save(repoContext *models.RepoContext) error {
	if s.err != nil {
		return s.err
	}
	s.saved = repoContext
	return nil
}

func (s *memoryStore) Load(string) (*models.RepoContext, error) {
	return s.saved, nil
}

func newTestAnalyzer(t testing.TB, options Options) *RepoAnalyzer {
	if options.WorkDir == "" {
		options.WorkDir = t.TempDir()
	}
	if options.AnalyzedExtensions == nil {
		options.AnalyzedExtensions = []string{".py", ".js", ".java", ".ts", ".go"}
	}
	if options.Logger == nil {
		options.Logger = logger.Discard()
	}
	return NewRepoAnalyzer(options)
}
