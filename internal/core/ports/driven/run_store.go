package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// RunStore records the history of publish operations.
// It is an audit log; nothing reads it to decide what to publish.
type RunStore interface {
	// Record saves a completed run and its outcomes.
	Record(ctx context.Context, run domain.Run) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Prune keeps only the most recent keep runs.
	Prune(ctx context.Context, keep int) error
}
