package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linguistlexicon/lexicon-service/internal/models"
)

// jsonFile implements FileStore backed by a single JSON file on the local filesystem
type jsonFile struct {
	path string
}

// NewJSONFile creates a new jsonFile instance for the given dataset path
func NewJSONFile(path string) *jsonFile {
	return &jsonFile{
		path: path,
	}
}

// Load reads the full entry collection from the backing file.
// A missing file is not an error and yields an empty collection.
func (s *jsonFile) Load() ([]models.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	// An empty file is treated like a missing one
	if len(data) == 0 {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon file %s: %w", s.path, err)
	}

	return entries, nil
}

// Save writes the full entry collection to the backing file atomically.
// It writes to a temp file in the same directory and renames it over the
// target, so a crash mid-write never leaves a partial file behind.
func (s *jsonFile) Save(entries []models.Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}

	// Temp file must live on the same filesystem for the rename to be atomic
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace lexicon file: %w", err)
	}

	return nil
}

// Path returns the backing file path
func (s *jsonFile) Path() string {
	return s.path
}
