package repo_analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
)

const (
	LanguagePython  = "python"
	LanguageUnknown = "unknown"
)

// languageMap is the closed extension -> language table.
var languageMap = map[string]string{
	".py":   LanguagePython,
	".js":   "javascript",
	".ts":   "typescript",
	".java": "java",
	".cpp":  "cpp",
	".go":   "go",
}

// DetectLanguage maps a file extension (with its leading dot) to a language label.
func (analyzer *RepoAnalyzer) DetectLanguage(fileExtension string) string {
	return LanguageForExtension(fileExtension)
}

// LanguageForExtension is the lookup behind DetectLanguage; matching ignores case.
func LanguageForExtension(fileExtension string) string {
	if language, ok := languageMap[strings.ToLower(fileExtension)]; ok {
		return language
	}
	return LanguageUnknown
}

// AnalyzeDependencies returns the dependency names of a file. No language is resolved yet.
func AnalyzeDependencies(content []byte, language string) []string {
	return []string{}
}

// GenerateDescription returns the placeholder description of a file.
func GenerateDescription(content []byte, language string) string {
	return fmt.Sprintf("Source code file in %s", language)
}

// DetectMainLanguages ranks languages by file count, most frequent first.
// Ties keep the order in which the languages were first seen.
func (analyzer *RepoAnalyzer) DetectMainLanguages(files []models.FileContext) []string {
	counts := make(map[string]int)
	var languages []string

	for _, file := range files {
		if _, seen := counts[file.Language]; !seen {
			languages = append(languages, file.Language)
		}
		counts[file.Language]++
	}

	sort.SliceStable(languages, func(i, j int) bool {
		return counts[languages[i]] > counts[languages[j]]
	})

	if languages == nil {
		return []string{}
	}
	return languages
}

// AggregateDependencies counts dependency names across all files.
func (analyzer *RepoAnalyzer) AggregateDependencies(files []models.FileContext) map[string]int {
	dependencies := make(map[string]int)
	for _, file := range files {
		for _, dep := range file.Dependencies {
			dependencies[dep]++
		}
	}
	return dependencies
}
