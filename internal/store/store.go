// internal/store/store.go

// Package store holds the ordered sequence of captured steps for one
// recording session.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// ErrFrozen is returned by Append once the store is finalized. It marks a
// capture racing with shutdown; callers should log and ignore it.
var ErrFrozen = errors.New("step store is frozen")

// StepStore is an append-only, ordered, in-memory sequence of steps.
// Append allocates strictly increasing gap-free indices; Freeze makes the
// store read-only. Safe for concurrent use because capture completions and
// the finalize signal may race.
type StepStore struct {
	mu     sync.Mutex
	steps  []types.Step
	frozen bool
}

func New() *StepStore {
	return &StepStore{}
}

// Append stores an encoded capture under the next index and returns the
// created step. The store stamps the capture time.
func (s *StepStore) Append(description, mimeType string, image []byte) (types.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return types.Step{}, ErrFrozen
	}
	step := types.Step{
		Index:       len(s.steps),
		Description: description,
		MimeType:    mimeType,
		Image:       image,
		CapturedAt:  time.Now().UTC(),
	}
	s.steps = append(s.steps, step)
	return step, nil
}

// Freeze finalizes the store and returns the ordered steps. Idempotent;
// repeated calls return the same sequence.
func (s *StepStore) Freeze() []types.Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frozen = true
	return s.snapshotLocked()
}

// Snapshot returns a copy of the steps recorded so far without freezing
// the store, for draft reports while the session is still live.
func (s *StepStore) Snapshot() []types.Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *StepStore) snapshotLocked() []types.Step {
	out := make([]types.Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Len reports the number of steps recorded so far.
func (s *StepStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.steps)
}

// Frozen reports whether the store has been finalized.
func (s *StepStore) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frozen
}
