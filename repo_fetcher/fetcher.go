// Package repo_fetcher materializes a repository branch in a scratch directory using the git CLI.
package repo_fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
)

const tokenUser = "x-access-token"

// authenticatedHosts receive the access token embedded in https clone URLs.
var authenticatedHosts = map[string]bool{
	"github.com":     true,
	"www.github.com": true,
}

// RepoFetcher clones repositories and removes scratch checkouts.
type RepoFetcher struct {
	token  string
	logger *slog.Logger
	runGit GitRunner
}

// NewRepoFetcher creates a fetcher that authenticates GitHub https clones with token.
func NewRepoFetcher(token string, logger *slog.Logger) *RepoFetcher {
	return &RepoFetcher{
		token:  token,
		logger: logger,
		runGit: runGit,
	}
}

// Fetch clones branch of repoURL into destPath. An existing destPath is reused as-is.
func (f *RepoFetcher) Fetch(ctx context.Context, repoURL string, branch string, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		f.logger.Info("reusing existing checkout", "path", destPath)
		return nil
	} else if !os.IsNotExist(err) {
		return models.NewError(models.KindFetch, "inspect checkout", err)
	}

	absPath, err := filepath.Abs(destPath)
	if err != nil {
		return models.NewError(models.KindFetch, "resolve path", err)
	}

	f.logger.Info("cloning repository", "url", repoURL, "branch", branch)

	_, err = f.runGit(ctx, "", "clone", "--branch", branch, "--single-branch", "--", f.cloneURL(repoURL), absPath)
	if err != nil {
		err = f.redact(err)
		f.logger.Error("error cloning repository", "url", repoURL, "branch", branch, "error", err)
		return models.NewError(models.KindFetch, "clone", err)
	}

	return nil
}

// Revision returns the commit hash checked out at repoPath.
func (f *RepoFetcher) Revision(ctx context.Context, repoPath string) (string, error) {
	out, err := f.runGit(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", f.redact(err))
	}
	return strings.TrimSpace(out), nil
}

// Cleanup removes the scratch checkout if present.
func (f *RepoFetcher) Cleanup(destPath string) error {
	if _, err := os.Stat(destPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(destPath); err != nil {
		return fmt.Errorf("failed to remove checkout %s: %w", destPath, err)
	}
	f.logger.Debug("removed checkout", "path", destPath)
	return nil
}

// cloneURL embeds the token into https URLs of known hosts that carry no credentials yet.
func (f *RepoFetcher) cloneURL(repoURL string) string {
	if f.token == "" {
		return repoURL
	}
	u, err := url.Parse(repoURL)
	if err != nil || u.Scheme != "https" || u.User != nil || !authenticatedHosts[strings.ToLower(u.Host)] {
		return repoURL
	}
	u.User = url.UserPassword(tokenUser, f.token)
	return u.String()
}

// redact masks the credential that cloneURL embeds, in raw and escaped form.
// Other occurrences of the token text are left alone.
func (f *RepoFetcher) redact(err error) error {
	if f.token == "" {
		return err
	}

	msg := err.Error()
	for _, credential := range []string{
		tokenUser + ":" + f.token + "@",
		url.UserPassword(tokenUser, f.token).String() + "@",
	} {
		msg = strings.ReplaceAll(msg, credential, tokenUser+":***@")
	}
	if msg == err.Error() {
		return err
	}

	return &redactedError{msg: msg, err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
