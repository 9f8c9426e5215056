package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FSStore persists run results on the local filesystem under
// <baseDir>/runs/<runID>/result.json, next to the run's trace.jsonl.
// Writes go through a temp file plus rename so a crash mid-write never
// leaves a corrupt result behind.
type FSStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFSStore creates a filesystem store rooted at baseDir, creating the
// directory tree if needed.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "runs"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// BaseDir returns the store's root directory.
func (s *FSStore) BaseDir() string { return s.baseDir }

func (s *FSStore) runDir(runID string) string {
	return filepath.Join(s.baseDir, "runs", runID)
}

// SaveResult implements Store.
func (s *FSStore) SaveResult(runID string, result *RunResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.runDir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "result-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, "result.json")); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to commit result: %w", err)
	}
	return nil
}

// LoadResult implements Store.
func (s *FSStore) LoadResult(runID string) (*RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.runDir(runID), "result.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: runID}
		}
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

// ListResults implements Store.
func (s *FSStore) ListResults() ([]RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.baseDir, "runs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan runs directory: %w", err)
	}

	results := make([]RunResult, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.runDir(entry.Name()), "result.json"))
		if err != nil {
			// Runs still in flight have a directory but no result yet.
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read result for %s: %w", entry.Name(), err)
		}
		var result RunResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result for %s: %w", entry.Name(), err)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Finished.After(results[j].Finished)
	})
	return results, nil
}

// DeleteResult implements Store. It removes the whole run directory,
// including the generation trace.
func (s *FSStore) DeleteResult(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.runDir(runID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}
	return nil
}
