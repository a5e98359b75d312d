package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// FileContext holds the analysis result of a single source file
type FileContext struct {
	Path         string
	Content      string
	ContentHash  string
	Language     string
	Imports      []string
	Dependencies []string
	Description  string
}

// RepoContext is the aggregate result of one analysis run
type RepoContext struct {
	RepoName      string
	Branch        string
	Commit        string
	Files         []FileContext
	Structure     Tree
	MainLanguages []string
	Dependencies  map[string]int
	Metadata      *RepoMetadata
	GeneratedAt   time.Time
}

// RepoMetadata holds facts reported by the hosted repository API
type RepoMetadata struct {
	FullName      string
	Description   string
	DefaultBranch string
	Stars         int
	Topics        []string
}

// Tree is one directory level of the walked file tree.
// Its JSON form maps file names to null and directory names to nested objects.
type Tree struct {
	Files []string
	Dirs  map[string]*Tree
}

// NewTree returns an empty directory node.
func NewTree() Tree {
	return Tree{Dirs: make(map[string]*Tree)}
}

// AddFile records a file leaf.
func (t *Tree) AddFile(name string) {
	t.Files = append(t.Files, name)
}

// AddDir records a sub-directory and returns it for population.
func (t *Tree) AddDir(name string) *Tree {
	if t.Dirs == nil {
		t.Dirs = make(map[string]*Tree)
	}
	sub := NewTree()
	t.Dirs[name] = &sub
	return &sub
}

// IsEmpty reports whether the directory holds no entries.
func (t Tree) IsEmpty() bool {
	return len(t.Files) == 0 && len(t.Dirs) == 0
}

// Names returns the entry names of this level in sorted order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t.Files)+len(t.Dirs))
	names = append(names, t.Files...)
	for name := range t.Dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CountFiles returns the number of file leaves in the whole subtree.
func (t Tree) CountFiles() int {
	count := len(t.Files)
	for _, sub := range t.Dirs {
		count += sub.CountFiles()
	}
	return count
}

func (t Tree) toMap() map[string]interface{} {
	out := make(map[string]interface{}, len(t.Files)+len(t.Dirs))
	for _, name := range t.Files {
		out[name] = nil
	}
	for name, sub := range t.Dirs {
		out[name] = sub.toMap()
	}
	return out
}

// MarshalJSON renders the tree as a nested name -> subtree-or-null object.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toMap())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = NewTree()
	for name, value := range raw {
		if string(value) == "null" {
			t.AddFile(name)
			continue
		}
		sub := t.AddDir(name)
		if err := sub.UnmarshalJSON(value); err != nil {
			return fmt.Errorf("directory %s: %w", name, err)
		}
	}
	sort.Strings(t.Files)

	return nil
}
