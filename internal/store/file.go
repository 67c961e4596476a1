package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/propscope/feasibility/pkg/feasibility"
	"go.uber.org/zap"
)

// FileStore persists the collection as a single JSON array on disk. Writes go
// through a temp file and rename so a crash mid-write never corrupts the
// previous collection.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store at path, creating the parent
// directory if needed.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	return &FileStore{path: path, logger: logger}, nil
}

// LoadAll reads the persisted collection. A missing file or unparsable
// contents yield an empty collection rather than an error.
func (f *FileStore) LoadAll() ([]feasibility.Study, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []feasibility.Study{}, nil
		}
		return nil, fmt.Errorf("failed to read study collection: %w", err)
	}

	var studies []feasibility.Study
	if err := json.Unmarshal(data, &studies); err != nil {
		f.logger.Warn("discarding unparsable study collection",
			zap.String("op", "store.FileStore.LoadAll"),
			zap.String("path", f.path),
			zap.Error(err),
		)
		return []feasibility.Study{}, nil
	}
	if studies == nil {
		studies = []feasibility.Study{}
	}
	return studies, nil
}

// StoreAll atomically replaces the persisted collection.
func (f *FileStore) StoreAll(studies []feasibility.Study) error {
	if studies == nil {
		studies = []feasibility.Study{}
	}
	data, err := json.MarshalIndent(studies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize study collection: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write study collection: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace study collection: %w", err)
	}
	return nil
}
