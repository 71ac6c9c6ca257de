package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore keeps publish runs in memory, in insertion order. It backs run
// history when the SQLite database cannot be opened.
type RunStore struct {
	mu   sync.RWMutex
	runs []domain.Run
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// Record appends a run.
func (s *RunStore) Record(_ context.Context, run domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run.Outcomes = append([]domain.PublishOutcome(nil), run.Outcomes...)
	s.runs = append(s.runs, run)
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.runs {
		if s.runs[i].ID == id {
			run := s.runs[i]
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns up to limit runs, newest first.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Run, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.runs[i])
	}
	return result, nil
}

// Prune keeps only the newest keep runs.
func (s *RunStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	if len(s.runs) > keep {
		s.runs = append([]domain.Run(nil), s.runs[len(s.runs)-keep:]...)
	}
	return nil
}
