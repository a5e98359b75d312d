package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var ownerRepoPattern = regexp.MustCompile(`[:/](?P<owner>[^/:]+)/(?P<repo>[^/]+?)(?:\.git)?/?$`)

// RepoNameFromURL returns the last path segment of a repository URL without a ".git" suffix.
func RepoNameFromURL(repoURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}

// ParseOwnerRepo extracts owner and repository name from https or scp-style git URLs.
func ParseOwnerRepo(repoURL string) (string, string, error) {
	m := ownerRepoPattern.FindStringSubmatch(strings.TrimSpace(repoURL))
	if len(m) == 0 {
		return "", "", fmt.Errorf("cannot find owner/repo in %q", repoURL)
	}
	return m[1], m[2], nil
}

// ScratchDirName returns the directory name used for the temporary clone of a branch.
func ScratchDirName(branch string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return "temp_repo_" + replacer.Replace(branch)
}
