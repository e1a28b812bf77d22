// internal/state/run.go

// Package state provides filesystem-backed storage implementations.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Run records one finished recording session.
type Run struct {
	SessionID   types.SessionID   `json:"session_id"`
	Title       string            `json:"title"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Steps       int               `json:"steps"`
	Dropped     int64             `json:"dropped"`
	Failed      int64             `json:"failed"`
	ImageFormat string            `json:"image_format"`
	Outputs     map[string]string `json:"outputs"`
}

// RunStore is a JSON-file-backed history of recording runs.
// It stores the run index in runs/runs.json under the data directory.
type RunStore struct {
	root string
	mu   sync.RWMutex
}

// NewRunStore creates a new file-backed RunStore rooted at the given directory.
func NewRunStore(root string) *RunStore {
	return &RunStore{root: root}
}

func (s *RunStore) indexPath() string {
	return filepath.Join(s.root, "runs", "runs.json")
}

func (s *RunStore) runsDir() string {
	return filepath.Join(s.root, "runs")
}

// loadIndex reads runs.json and returns the runs in file order.
func (s *RunStore) loadIndex() ([]*Run, error) {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read run index: %w", err)
	}

	var runs []*Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("unmarshal run index: %w", err)
	}
	return runs, nil
}

// saveIndex marshals with indentation and writes atomically.
func (s *RunStore) saveIndex(runs []*Run) error {
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run index: %w", err)
	}

	if err := os.MkdirAll(s.runsDir(), 0o755); err != nil {
		return fmt.Errorf("create runs dir: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmp, s.indexPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp index: %w", err)
	}
	return nil
}

// Append adds a run to the end of the history.
func (s *RunStore) Append(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs, err := s.loadIndex()
	if err != nil {
		return err
	}
	return s.saveIndex(append(runs, run))
}

// List returns all recorded runs in the order they finished.
func (s *RunStore) List(_ context.Context) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadIndex()
}

// Remove deletes the run with the given session ID from the history.
func (s *RunStore) Remove(_ context.Context, id types.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs, err := s.loadIndex()
	if err != nil {
		return err
	}

	kept := make([]*Run, 0, len(runs))
	for _, run := range runs {
		if run.SessionID != id {
			kept = append(kept, run)
		}
	}
	if len(kept) == len(runs) {
		return fmt.Errorf("session not found: %s", id)
	}
	return s.saveIndex(kept)
}

// Clear removes the entire run history.
func (s *RunStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.runsDir()); err != nil {
		return fmt.Errorf("remove runs directory: %w", err)
	}
	return nil
}
