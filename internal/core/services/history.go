package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs returned when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService reads recorded publish runs.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a history service. runs may be nil when history
// is disabled.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

// Recent returns the latest runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.runs == nil {
		return []domain.Run{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.runs.List(ctx, limit)
}

// Prune deletes all but the newest keep runs.
func (s *HistoryService) Prune(ctx context.Context, keep int) error {
	if s.runs == nil {
		return nil
	}
	if keep < 0 {
		return fmt.Errorf("%w: keep must not be negative", domain.ErrInvalidInput)
	}
	return s.runs.Prune(ctx, keep)
}

// Get returns one run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("%w: run history is disabled", domain.ErrNotFound)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}
	return s.runs.Get(ctx, id)
}
