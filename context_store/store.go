// Package context_store writes analysis results to disk: a gob snapshot of the full
// RepoContext and an indented JSON document for people to read.
package context_store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
)

// ContextStore persists RepoContexts to a snapshot file and a document file.
type ContextStore struct {
	snapshotPath string
	documentPath string
}

// NewContextStore creates a store writing to the given paths.
func NewContextStore(snapshotPath string, documentPath string) *ContextStore {
	return &ContextStore{
		snapshotPath: snapshotPath,
		documentPath: documentPath,
	}
}

// SnapshotPath returns where the binary snapshot is written.
func (s *ContextStore) SnapshotPath() string { return s.snapshotPath }

// DocumentPath returns where the JSON document is written.
func (s *ContextStore) DocumentPath() string { return s.documentPath }

// Save writes the snapshot first, then the JSON document.
func (s *ContextStore) Save(repoContext *models.RepoContext) error {
	var buffer bytes.Buffer
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(repoContext); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := writeFileAtomic(s.snapshotPath, buffer.Bytes()); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	document, err := MarshalDocument(repoContext)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.documentPath, document); err != nil {
		return fmt.Errorf("failed to write context document: %w", err)
	}

	return nil
}

// Load reads a snapshot written by Save.
func (s *ContextStore) Load(snapshotPath string) (*models.RepoContext, error) {
	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var repoContext models.RepoContext
	decoder := gob.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&repoContext); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", snapshotPath, err)
	}

	return &repoContext, nil
}

// MarshalDocument renders the JSON document of a RepoContext with two-space indentation.
func MarshalDocument(repoContext *models.RepoContext) ([]byte, error) {
	document, err := json.MarshalIndent(NewDocument(repoContext), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode context document: %w", err)
	}
	return document, nil
}

// writeFileAtomic writes through a temp file in the target directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
