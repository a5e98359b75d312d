package context_store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() *models.RepoContext {
	structure := models.NewTree()
	structure.AddFile("README.md")
	src := structure.AddDir("src")
	src.AddFile("main.py")
	structure.AddDir("empty")

	return &models.RepoContext{
		RepoName: "widgets",
		Branch:   "main",
		Commit:   "0123abcd",
		Files: []models.FileContext{
			{
				Path:         "src/main.py",
				Content:      "import os\nfrom a.b import c\n",
				ContentHash:  "00000000deadbeef",
				Language:     "python",
				Imports:      []string{"os", "a.b.c"},
				Dependencies: []string{},
				Description:  "Source code file in python",
			},
		},
		Structure:     structure,
		MainLanguages: []string{"python"},
		Dependencies:  map[string]int{},
		Metadata:      &models.RepoMetadata{FullName: "acme/widgets", Stars: 3},
		GeneratedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestContextStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewContextStore(filepath.Join(dir, "out", "repo_context.gob"), filepath.Join(dir, "out", "repo_context.json"))

	saved := sampleContext()
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load(store.SnapshotPath())
	require.NoError(t, err)

	assert.Equal(t, saved.RepoName, loaded.RepoName)
	assert.Equal(t, saved.Commit, loaded.Commit)
	assert.Equal(t, saved.Files[0].Content, loaded.Files[0].Content)
	assert.Equal(t, saved.Files[0].Imports, loaded.Files[0].Imports)
	assert.Equal(t, saved.Metadata.FullName, loaded.Metadata.FullName)
	assert.True(t, saved.GeneratedAt.Equal(loaded.GeneratedAt))

	// files and directories stay distinguishable, including empty directories
	assert.Equal(t, []string{"README.md"}, loaded.Structure.Files)
	require.Contains(t, loaded.Structure.Dirs, "src")
	assert.Equal(t, []string{"main.py"}, loaded.Structure.Dirs["src"].Files)
	require.Contains(t, loaded.Structure.Dirs, "empty")
	assert.True(t, loaded.Structure.Dirs["empty"].IsEmpty())

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestContextStore_DocumentShape(t *testing.T) {
	dir := t.TempDir()
	store := NewContextStore(filepath.Join(dir, "ctx.gob"), filepath.Join(dir, "ctx.json"))
	require.NoError(t, store.Save(sampleContext()))

	data, err := os.ReadFile(store.DocumentPath())
	require.NoError(t, err)

	var document map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &document))

	assert.Equal(t, "widgets", document["repo_name"])
	assert.Equal(t, "main", document["branch"])
	assert.Equal(t, []interface{}{"python"}, document["main_languages"])
	assert.NotContains(t, document, "dependencies")

	structure := document["structure"].(map[string]interface{})
	assert.Nil(t, structure["README.md"])
	assert.Equal(t, map[string]interface{}{}, structure["empty"])
	assert.Equal(t, map[string]interface{}{"main.py": nil}, structure["src"])

	files := document["files"].([]interface{})
	require.Len(t, files, 1)
	file := files[0].(map[string]interface{})
	assert.Equal(t, "src/main.py", file["path"])
	assert.Equal(t, []interface{}{"os", "a.b.c"}, file["imports"])
	assert.Equal(t, []interface{}{}, file["dependencies"])
	assert.NotContains(t, file, "content")

	assert.Contains(t, string(data), "\n  \"repo_name\"")
}

func TestNewDocument_EmptyListsStayArrays(t *testing.T) {
	document := NewDocument(&models.RepoContext{
		RepoName: "r",
		Files:    []models.FileContext{{Path: "a.go", Language: "go"}},
	})

	data, err := json.Marshal(document)
	require.NoError(t, err)

	assert.JSONEq(t, `{"repo_name":"r","branch":"","structure":{},"main_languages":[],
		"files":[{"path":"a.go","language":"go","imports":[],"dependencies":[],"description":""}]}`, string(data))
}

func TestContextStore_LoadMissing(t *testing.T) {
	store := NewContextStore("", "")
	_, err := store.Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
