package contracts

import (
	"context"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
)

type IRepoAnalyzer interface {
	AnalyzeRepository(ctx context.Context, repoURL string, branch string) (*models.RepoContext, error)
	BuildStructure(rootDir string) (models.Tree, error)
	AnalyzeFile(ctx context.Context, rootDir string, relativePath string) (*models.FileContext, error)
	DetectLanguage(fileExtension string) string
	ExtractImports(ctx context.Context, content []byte, language string) ([]string, error)
	DetectMainLanguages(files []models.FileContext) []string
	AggregateDependencies(files []models.FileContext) map[string]int
}

// IRepoFetcher materializes a repository branch on local disk.
type IRepoFetcher interface {
	Fetch(ctx context.Context, repoURL string, branch string, destPath string) error
	Revision(ctx context.Context, repoPath string) (string, error)
	Cleanup(destPath string) error
}

// IContextStore persists a finished RepoContext.
type IContextStore interface {
	Save(repoContext *models.RepoContext) error
	Load(snapshotPath string) (*models.RepoContext, error)
}

// IMetadataProvider looks up hosted repository facts.
type IMetadataProvider interface {
	RepositoryMetadata(ctx context.Context, owner string, repo string) (*models.RepoMetadata, error)
}
