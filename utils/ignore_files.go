package utils

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// buildCacheDirs are entry names skipped even though they are not hidden
var buildCacheDirs = map[string]bool{
	"__pycache__": true,
}

// IsSkippedEntry reports whether a directory entry is left out of the walk:
// hidden entries (leading dot) and build caches.
func IsSkippedEntry(name string) bool {
	return strings.HasPrefix(name, ".") || buildCacheDirs[name]
}

// LoadGitignore compiles the .gitignore at the root of a checkout.
// It returns nil when the file is missing or cannot be parsed.
func LoadGitignore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(gitignorePath); err != nil {
		return nil
	}

	gitignore, err := ignore.CompileIgnoreFile(gitignorePath)
	if err != nil {
		return nil
	}
	return gitignore
}

// IsGitIgnored checks a slash-separated relative path against compiled patterns.
// Directories are also tried with a trailing slash so that "dir/" patterns apply to them.
func IsGitIgnored(relativePath string, isDir bool, gitignore *ignore.GitIgnore) bool {
	if gitignore == nil {
		return false
	}
	if isDir && gitignore.MatchesPath(relativePath+"/") {
		return true
	}
	return gitignore.MatchesPath(relativePath)
}
