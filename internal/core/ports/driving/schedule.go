package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// ScheduleService runs on-demand publish passes over a post spreadsheet.
type ScheduleService interface {
	// ListPending returns rows whose publish date is after now.
	ListPending(ctx context.Context, userID, sheetID string, now time.Time) ([]domain.PendingPost, error)

	// PublishRowNow publishes a single sheet row regardless of its date.
	PublishRowNow(ctx context.Context, userID, sheetID, blogID string, row int) (domain.PublishOutcome, error)

	// SweepDue publishes every row whose publish date is at or before now.
	SweepDue(ctx context.Context, userID, sheetID, blogID string, now time.Time) (*domain.SweepResult, error)

	// PublishSheet publishes every row except those dated in the future.
	// Rows without a date are published immediately.
	PublishSheet(ctx context.Context, userID, sheetID, blogID string, now time.Time) ([]domain.PublishOutcome, error)
}
