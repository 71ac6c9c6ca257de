package driving

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// HistoryService exposes recorded publish runs.
type HistoryService interface {
	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Run, error)

	// Get returns one run.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Prune deletes all but the newest keep runs.
	Prune(ctx context.Context, keep int) error
}
