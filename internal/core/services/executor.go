package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// PublishExecutor sends records to the publish capability and turns each
// attempt into an outcome.
type PublishExecutor struct {
	publisher driven.Publisher
}

// NewPublishExecutor creates an executor over publisher.
func NewPublishExecutor(publisher driven.Publisher) *PublishExecutor {
	return &PublishExecutor{publisher: publisher}
}

// PublishOne publishes a single record. Failures never escape; they are
// reported in the outcome.
func (e *PublishExecutor) PublishOne(ctx context.Context, blogID string, rec domain.PostRecord) domain.PublishOutcome {
	outcome, _ := e.publish(ctx, blogID, rec.Payload(), rec)
	return outcome
}

// PublishBatch publishes records one at a time in order. The result has one
// outcome per record; a failing record does not stop the batch.
func (e *PublishExecutor) PublishBatch(ctx context.Context, blogID string, records []domain.PostRecord) []domain.PublishOutcome {
	outcomes := make([]domain.PublishOutcome, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			for _, rest := range records[i:] {
				outcomes = append(outcomes, errorOutcome(rest, err))
			}
			break
		}
		outcomes = append(outcomes, e.PublishOne(ctx, blogID, rec))
	}
	return outcomes
}

// publish creates the post and returns both the outcome and the raw error so
// single-row callers can surface it.
func (e *PublishExecutor) publish(
	ctx context.Context,
	blogID string,
	payload domain.PostPayload,
	rec domain.PostRecord,
) (domain.PublishOutcome, error) {
	created, err := e.publisher.Create(ctx, blogID, payload)
	if err != nil {
		logger.Warn("Row %d (%q) failed to publish: %v", rec.Row, rec.Title, err)
		return errorOutcome(rec, err), err
	}
	if created == nil {
		err = fmt.Errorf("publisher returned no post")
		return errorOutcome(rec, err), err
	}

	logger.Debug("Row %d published as post %s", rec.Row, created.ID)
	return domain.PublishOutcome{
		Row:    rec.Row,
		Title:  rec.Title,
		Status: domain.OutcomeSuccess,
		PostID: created.ID,
		URL:    created.URL,
	}, nil
}

func errorOutcome(rec domain.PostRecord, err error) domain.PublishOutcome {
	return domain.PublishOutcome{
		Row:     rec.Row,
		Title:   rec.Title,
		Status:  domain.OutcomeError,
		Message: outcomeMessage(err),
	}
}

// outcomeMessage renders err for an outcome, preferring the remote message.
func outcomeMessage(err error) string {
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}
