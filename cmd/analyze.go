package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/meysamhadeli/repoctx/config"
	"github.com/meysamhadeli/repoctx/constants/lipgloss"
	"github.com/meysamhadeli/repoctx/context_store"
	"github.com/meysamhadeli/repoctx/logger"
	"github.com/meysamhadeli/repoctx/providers/github"
	"github.com/meysamhadeli/repoctx/repo_analyzer"
	"github.com/meysamhadeli/repoctx/repo_analyzer/contracts"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/meysamhadeli/repoctx/repo_fetcher"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// analyzeCmd: repoctx analyze
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Clone a repository branch and write its context snapshot and JSON document.",
	Long: `The 'analyze' subcommand clones the given branch into a scratch directory under --workdir
(an existing checkout with the same name is reused), builds the file tree, detects languages,
extracts python imports and writes both the binary snapshot and the JSON document.
GITHUB_TOKEN must be set in the environment or in a .env file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleAnalyzeCommand(rootDependencies)
	},
}

func init() {
	config.InitAnalyzeFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func handleAnalyzeCommand(rootDependencies *RootDependencies) error {
	cfg := rootDependencies.Config

	if err := cfg.RequireRepoURL(); err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Logs and the spinner share stderr; without a terminal there is no spinner.
	log := rootDependencies.Logger
	var terminal *terminalWriter
	if isatty.IsTerminal(os.Stderr.Fd()) {
		terminal = newTerminalWriter(os.Stderr)
		log = logger.NewWithWriter(cfg.Logging, terminal)
	}

	var metadata contracts.IMetadataProvider
	if cfg.FetchMetadata {
		provider, err := github.NewGithubProvider(&github.GithubConfig{Token: cfg.GithubToken})
		if err != nil {
			return models.NewError(models.KindConfig, "create github provider", err)
		}
		metadata = provider
	}

	analyzer := repo_analyzer.NewRepoAnalyzer(repo_analyzer.Options{
		WorkDir:            cfg.WorkDir,
		AnalyzedExtensions: cfg.AnalyzedExtensions,
		RespectGitignore:   cfg.RespectGitignore,
		Fetcher:            repo_fetcher.NewRepoFetcher(cfg.GithubToken, log),
		Store:              context_store.NewContextStore(cfg.Snapshot, cfg.Output),
		Metadata:           metadata,
		Logger:             log,
	})

	var spinnerAnalyze *pterm.SpinnerPrinter
	if terminal != nil {
		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true).
			WithWriter(terminal.Frames())

		spinnerAnalyze, _ = spinner.Start(fmt.Sprintf("Analyzing %s (%s)...", cfg.RepoURL, cfg.Branch))
	}

	repoContext, err := analyzer.AnalyzeRepository(ctx, cfg.RepoURL, cfg.Branch)

	if spinnerAnalyze != nil {
		_ = spinnerAnalyze.Stop()
	}

	if err != nil {
		return err
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Analyzed %d files of %s, context written to %s and %s",
		len(repoContext.Files), repoContext.RepoName, cfg.Output, cfg.Snapshot)))

	return nil
}

// describeError turns a failed run into the message printed before exiting.
func describeError(err error) string {
	switch models.KindOf(err) {
	case models.KindCredential:
		if errors.Is(err, models.ErrMissingToken) {
			return models.ErrMissingToken.Error()
		}
		return fmt.Sprintf("Credential error: %v", err)
	case models.KindFetch:
		return fmt.Sprintf("Failed to clone repository: %v", err)
	case models.KindWalk:
		return fmt.Sprintf("Failed to read repository files: %v", err)
	case models.KindSave:
		return fmt.Sprintf("Failed to save context: %v", err)
	case models.KindConfig:
		return fmt.Sprintf("Configuration error: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
