package context_store

import "github.com/meysamhadeli/repoctx/repo_analyzer/models"

// Document is the human-readable rendering of a RepoContext. Raw file content is left out.
type Document struct {
	RepoName      string         `json:"repo_name"`
	Branch        string         `json:"branch"`
	Structure     models.Tree    `json:"structure"`
	MainLanguages []string       `json:"main_languages"`
	Files         []DocumentFile `json:"files"`
}

type DocumentFile struct {
	Path         string   `json:"path"`
	Language     string   `json:"language"`
	Imports      []string `json:"imports"`
	Dependencies []string `json:"dependencies"`
	Description  string   `json:"description"`
}

// NewDocument projects a RepoContext onto its JSON document form.
func NewDocument(repoContext *models.RepoContext) *Document {
	document := &Document{
		RepoName:      repoContext.RepoName,
		Branch:        repoContext.Branch,
		Structure:     repoContext.Structure,
		MainLanguages: nonNil(repoContext.MainLanguages),
		Files:         make([]DocumentFile, 0, len(repoContext.Files)),
	}

	for _, file := range repoContext.Files {
		document.Files = append(document.Files, DocumentFile{
			Path:         file.Path,
			Language:     file.Language,
			Imports:      nonNil(file.Imports),
			Dependencies: nonNil(file.Dependencies),
			Description:  file.Description,
		})
	}

	return document
}

// nonNil keeps empty lists as [] rather than null in the JSON output
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
