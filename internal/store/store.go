// Package store persists resume analysis records. The engine treats
// storage as an interface; the bundled implementation keeps records in a
// single JSON file, which is plenty for the dataset sizes this service
// trains on.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// RecordStore reads and appends resume analysis records.
type RecordStore interface {
	// List returns all stored records.
	List(ctx context.Context) ([]types.ResumeRecord, error)
	// Append persists one record.
	Append(ctx context.Context, record types.ResumeRecord) error
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

// FileStore is a RecordStore backed by one JSON array on disk. Safe for
// concurrent use within a single process.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store writing to path. The file is created on
// first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// List implements RecordStore. A missing file reads as an empty dataset.
func (s *FileStore) List(ctx context.Context) ([]types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Append implements RecordStore with a write-temp-then-rename so a crash
// never truncates the dataset.
func (s *FileStore) Append(ctx context.Context, record types.ResumeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: create data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write records: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: replace records: %w", err)
	}
	return nil
}

// Count implements RecordStore.
func (s *FileStore) Count(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *FileStore) read() ([]types.ResumeRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.ResumeRecord{}, nil
		}
		return nil, fmt.Errorf("store: read records: %w", err)
	}
	var records []types.ResumeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: decode records: %w", err)
	}
	return records, nil
}
