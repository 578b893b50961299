package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// GradebookStore persists the whole gradebook as a single JSON document.
// All read-modify-persist sequences are serialized behind one mutex so
// concurrent requests cannot lose updates, and every successful mutation is
// written through to disk before it is visible in memory.
type GradebookStore struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	state models.Snapshot
}

// NewGradebookStore loads the document at path, or starts empty when the
// file is absent. An unreadable or malformed document is not fatal: the
// store logs a warning and starts empty, per the load fallback contract.
func NewGradebookStore(path string, logger *zap.Logger) *GradebookStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &GradebookStore{
		path:   path,
		logger: logger,
		state:  models.EmptySnapshot(),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("gradebook document unreadable, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return s
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("gradebook document malformed, starting empty",
			zap.String("path", path), zap.Error(err))
		return s
	}
	if snapshot.Students == nil {
		snapshot.Students = []models.Student{}
	}
	if snapshot.Assignments == nil {
		snapshot.Assignments = []models.Assignment{}
	}
	if snapshot.Grades == nil {
		snapshot.Grades = []models.Grade{}
	}
	s.state = snapshot
	return s
}

// Path returns the backing document location.
func (s *GradebookStore) Path() string {
	return s.path
}

// Snapshot returns a deep copy of the current state.
func (s *GradebookStore) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update applies fn to a working copy of the state. When fn succeeds the
// result is flushed to disk and only then swapped in as the new in-memory
// state, so memory and document never diverge. An error from fn aborts the
// mutation with the previous state intact.
func (s *GradebookStore) Update(fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	if err := s.persist(working); err != nil {
		return err
	}
	s.state = working
	return nil
}

// Save flushes the current state unconditionally. Load-time fallback plus
// Save lets an operator rebuild a lost document from memory.
func (s *GradebookStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(s.state)
}

// persist writes the snapshot atomically: marshal, write a sibling temp
// file, then rename over the document. Callers must hold the lock.
func (s *GradebookStore) persist(snapshot models.Snapshot) error {
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal gradebook document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare gradebook directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write gradebook document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace gradebook document: %w", err)
	}
	return nil
}
