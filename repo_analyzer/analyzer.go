package repo_analyzer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meysamhadeli/repoctx/repo_analyzer/contracts"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/meysamhadeli/repoctx/utils"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/zeebo/xxh3"
)

// RepoAnalyzer runs the clone -> walk -> classify -> extract -> aggregate -> save pipeline.
type RepoAnalyzer struct {
	workDir            string
	analyzedExtensions []string
	respectGitignore   bool
	fetcher            contracts.IRepoFetcher
	store              contracts.IContextStore
	metadata           contracts.IMetadataProvider
	logger             *slog.Logger
	now                func() time.Time
}

var _ contracts.IRepoAnalyzer = (*RepoAnalyzer)(nil)

// Options configures a RepoAnalyzer. Store and Metadata are optional.
type Options struct {
	WorkDir            string
	AnalyzedExtensions []string
	RespectGitignore   bool
	Fetcher            contracts.IRepoFetcher
	Store              contracts.IContextStore
	Metadata           contracts.IMetadataProvider
	Logger             *slog.Logger
}

// NewRepoAnalyzer initializes a new RepoAnalyzer.
func NewRepoAnalyzer(options Options) *RepoAnalyzer {
	workDir := options.WorkDir
	if workDir == "" {
		workDir = "."
	}
	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &RepoAnalyzer{
		workDir:            workDir,
		analyzedExtensions: options.AnalyzedExtensions,
		respectGitignore:   options.RespectGitignore,
		fetcher:            options.Fetcher,
		store:              options.Store,
		metadata:           options.Metadata,
		logger:             log,
		now:                time.Now,
	}
}

// ScratchPath returns where the temporary clone of branch lives.
func (analyzer *RepoAnalyzer) ScratchPath(branch string) string {
	return filepath.Join(analyzer.workDir, utils.ScratchDirName(branch))
}

// AnalyzeRepository clones branch of repoURL, analyzes it and saves the result.
// The scratch clone is removed before returning, whatever the outcome.
func (analyzer *RepoAnalyzer) AnalyzeRepository(ctx context.Context, repoURL string, branch string) (*models.RepoContext, error) {
	scratchPath := analyzer.ScratchPath(branch)

	defer func() {
		if err := analyzer.fetcher.Cleanup(scratchPath); err != nil {
			analyzer.logger.Warn("failed to remove checkout", "path", scratchPath, "error", err)
		}
	}()

	if err := analyzer.fetcher.Fetch(ctx, repoURL, branch, scratchPath); err != nil {
		return nil, err
	}

	structure, err := analyzer.BuildStructure(scratchPath)
	if err != nil {
		return nil, err
	}

	relativePaths, err := analyzer.collectFiles(scratchPath)
	if err != nil {
		return nil, models.NewError(models.KindWalk, "collect files", err)
	}

	files := make([]models.FileContext, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		fileContext, err := analyzer.AnalyzeFile(ctx, scratchPath, relativePath)
		if err != nil {
			return nil, err
		}
		files = append(files, *fileContext)
	}

	commit, err := analyzer.fetcher.Revision(ctx, scratchPath)
	if err != nil {
		analyzer.logger.Warn("could not resolve commit", "error", err)
	}

	repoContext := &models.RepoContext{
		RepoName:      utils.RepoNameFromURL(repoURL),
		Branch:        branch,
		Commit:        commit,
		Files:         files,
		Structure:     structure,
		MainLanguages: analyzer.DetectMainLanguages(files),
		Dependencies:  analyzer.AggregateDependencies(files),
		Metadata:      analyzer.lookupMetadata(ctx, repoURL),
		GeneratedAt:   analyzer.now().UTC(),
	}

	if analyzer.store != nil {
		if err := analyzer.store.Save(repoContext); err != nil {
			return nil, models.NewError(models.KindSave, "save context", err)
		}
	}

	analyzer.logger.Info("analysis completed",
		"repo", repoContext.RepoName,
		"branch", branch,
		"files", len(files),
		"languages", repoContext.MainLanguages,
	)

	return repoContext, nil
}

// AnalyzeFile reads one file below rootDir and builds its FileContext.
// An import parse failure is logged and leaves the import list empty.
func (analyzer *RepoAnalyzer) AnalyzeFile(ctx context.Context, rootDir string, relativePath string) (*models.FileContext, error) {
	content, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(relativePath)))
	if err != nil {
		return nil, models.NewError(models.KindWalk, "read file", fmt.Errorf("failed to read file: %s, error: %w", relativePath, err))
	}

	language := analyzer.DetectLanguage(filepath.Ext(relativePath))

	imports, err := analyzer.ExtractImports(ctx, content, language)
	if err != nil {
		analyzer.logger.Warn("could not parse imports", "path", relativePath, "language", language, "error", err)
		imports = []string{}
	}

	return &models.FileContext{
		Path:         relativePath,
		Content:      string(content),
		ContentHash:  fmt.Sprintf("%016x", xxh3.Hash(content)),
		Language:     language,
		Imports:      imports,
		Dependencies: AnalyzeDependencies(content, language),
		Description:  GenerateDescription(content, language),
	}, nil
}

// collectFiles returns the slash-separated relative paths of files selected for analysis,
// in lexical walk order. Skip rules match BuildStructure.
func (analyzer *RepoAnalyzer) collectFiles(rootDir string) ([]string, error) {
	var gitignore *ignore.GitIgnore
	if analyzer.respectGitignore {
		gitignore = utils.LoadGitignore(rootDir)
	}

	var relativePaths []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == rootDir {
			return nil
		}

		if utils.IsSkippedEntry(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relativePath = filepath.ToSlash(relativePath)

		if utils.IsGitIgnored(relativePath, d.IsDir(), gitignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !analyzer.isAnalyzed(d.Name()) {
			return nil
		}

		relativePaths = append(relativePaths, relativePath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return relativePaths, nil
}

// isAnalyzed matches file names against the analyzed extensions; the match is case-sensitive.
func (analyzer *RepoAnalyzer) isAnalyzed(name string) bool {
	for _, ext := range analyzer.analyzedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (analyzer *RepoAnalyzer) lookupMetadata(ctx context.Context, repoURL string) *models.RepoMetadata {
	if analyzer.metadata == nil {
		return nil
	}

	owner, repo, err := utils.ParseOwnerRepo(repoURL)
	if err != nil {
		analyzer.logger.Warn("skipping repository metadata", "error", err)
		return nil
	}

	metadata, err := analyzer.metadata.RepositoryMetadata(ctx, owner, repo)
	if err != nil {
		analyzer.logger.Warn("could not fetch repository metadata", "owner", owner, "repo", repo, "error", err)
		return nil
	}
	return metadata
}
