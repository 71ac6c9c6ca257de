package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// Ensure ScheduleService implements the interface.
var _ driving.ScheduleService = (*ScheduleService)(nil)

// untitledPost is used when a targeted row has no title.
const untitledPost = "Untitled"

// skippedFutureMessage is the outcome message for rows held back by PublishSheet.
const skippedFutureMessage = "future publish date"

// scheduleColumns are required by the pending and sweep views.
var scheduleColumns = []string{domain.ColumnTitle, domain.ColumnContent, domain.ColumnPublishDate}

// postColumns are required by every publish operation.
var postColumns = []string{domain.ColumnTitle, domain.ColumnContent}

// ScheduleService runs the on-demand publish operations over one sheet.
type ScheduleService struct {
	credentials driving.CredentialsService
	clients     driven.ClientFactory
	runs        driven.RunStore
	keepRuns    int
	classifier  *Classifier
	clock       func() time.Time
}

// NewScheduleService creates a schedule service. runs may be nil to disable
// history; loc interprets publish dates without an offset.
func NewScheduleService(
	credentials driving.CredentialsService,
	clients driven.ClientFactory,
	runs driven.RunStore,
	loc *time.Location,
) *ScheduleService {
	return &ScheduleService{
		credentials: credentials,
		clients:     clients,
		runs:        runs,
		classifier:  NewClassifier(loc),
		clock:       time.Now,
	}
}

// SetHistoryKeep bounds the run history to the newest keep runs.
// keep <= 0 disables pruning.
func (s *ScheduleService) SetHistoryKeep(keep int) {
	s.keepRuns = keep
}

// ListPending returns rows whose publish date is after now, in sheet order.
func (s *ScheduleService) ListPending(ctx context.Context, userID, sheetID string, now time.Time) ([]domain.PendingPost, error) {
	batch, err := s.classify(ctx, userID, sheetID, now)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.PendingPost, 0, len(batch.Pending))
	for _, rec := range batch.Pending {
		pending = append(pending, domain.PendingPost{
			PostRecord:    rec,
			FormattedDate: rec.PublishDate.Format(domain.DisplayDateLayout),
		})
	}
	logger.Debug("Sheet %s: %d pending, %d due, %d invalid",
		sheetID, len(batch.Pending), len(batch.Due), len(batch.SkippedInvalid))
	return pending, nil
}

// PublishRowNow publishes one sheet row immediately. Only the header row and
// the target row are read. A publish failure is returned both as an error
// outcome and as the error.
func (s *ScheduleService) PublishRowNow(
	ctx context.Context,
	userID, sheetID, blogID string,
	row int,
) (domain.PublishOutcome, error) {
	if row < domain.FirstDataRow {
		return domain.PublishOutcome{}, fmt.Errorf("%w: row must be %d or greater, got %d",
			domain.ErrInvalidInput, domain.FirstDataRow, row)
	}
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return domain.PublishOutcome{}, err
	}

	reader, err := s.clients.TableReader(ctx, userID)
	if err != nil {
		return domain.PublishOutcome{}, err
	}

	rowGrid, err := reader.ReadRange(ctx, sheetID, domain.RowRange(row))
	if err != nil {
		return domain.PublishOutcome{}, fmt.Errorf("read row %d: %w", row, err)
	}
	if len(rowGrid) == 0 || isBlankRow(rowGrid[0]) {
		return domain.PublishOutcome{}, fmt.Errorf("%w: row %d", domain.ErrRowNotFound, row)
	}

	headerGrid, err := reader.ReadRange(ctx, sheetID, domain.HeaderRange)
	if err != nil {
		return domain.PublishOutcome{}, fmt.Errorf("read header row: %w", err)
	}
	if len(headerGrid) == 0 {
		return domain.PublishOutcome{}, &domain.MissingColumnsError{Missing: postColumns}
	}

	table, err := ParseSheetAt([][]string{headerGrid[0], rowGrid[0]}, row, postColumns...)
	if err != nil {
		return domain.PublishOutcome{}, err
	}

	rec := table.Record(0)
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = untitledPost
	}

	publisher, err := s.clients.Publisher(ctx, userID)
	if err != nil {
		return domain.PublishOutcome{}, err
	}

	started := s.clock()
	outcome, pubErr := NewPublishExecutor(publisher).publish(ctx, blogID, rec.Payload(), rec)
	s.record(ctx, domain.RunKindPublishRow, userID, sheetID, blogID, started, []domain.PublishOutcome{outcome})

	if pubErr != nil {
		return outcome, fmt.Errorf("publish row %d: %w", row, pubErr)
	}
	logger.Info("Published row %d as %s", row, outcome.URL)
	return outcome, nil
}

// SweepDue publishes every row whose publish date is at or before now.
// Pending and invalid rows are left alone.
func (s *ScheduleService) SweepDue(
	ctx context.Context,
	userID, sheetID, blogID string,
	now time.Time,
) (*domain.SweepResult, error) {
	batch, err := s.classify(ctx, userID, sheetID, now)
	if err != nil {
		return nil, err
	}

	result := &domain.SweepResult{
		Outcomes:     []domain.PublishOutcome{},
		PendingCount: len(batch.Pending),
		Invalid:      batch.SkippedInvalid,
	}
	if len(batch.Due) == 0 {
		logger.Info("Sheet %s: nothing due", sheetID)
		return result, nil
	}

	publisher, err := s.clients.Publisher(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Section(fmt.Sprintf("Sweeping %d due rows", len(batch.Due)))
	started := s.clock()
	result.Outcomes = NewPublishExecutor(publisher).PublishBatch(ctx, blogID, batch.Due)
	s.record(ctx, domain.RunKindSweep, userID, sheetID, blogID, started, result.Outcomes)

	return result, nil
}

// PublishSheet publishes every titled row of the sheet. Rows without a date
// go out now, rows dated after now are skipped, and rows whose date cannot be
// parsed are published without one.
func (s *ScheduleService) PublishSheet(
	ctx context.Context,
	userID, sheetID, blogID string,
	now time.Time,
) ([]domain.PublishOutcome, error) {
	table, err := s.readTable(ctx, userID, sheetID, postColumns...)
	if err != nil {
		return nil, err
	}

	publisher, err := s.clients.Publisher(ctx, userID)
	if err != nil {
		return nil, err
	}
	exec := NewPublishExecutor(publisher)

	started := s.clock()
	posts := table.Posts()
	outcomes := make([]domain.PublishOutcome, 0, len(posts))
	for _, rec := range posts {
		if rec.HasDate() {
			when, err := domain.ParsePublishDate(rec.RawPublishDate, s.classifier.loc)
			switch {
			case err != nil:
				logger.Debug("Row %d: ignoring unparseable date %q", rec.Row, rec.RawPublishDate)
			case when.After(now):
				outcomes = append(outcomes, domain.PublishOutcome{
					Row:     rec.Row,
					Title:   rec.Title,
					Status:  domain.OutcomeSkipped,
					Message: skippedFutureMessage,
				})
				continue
			default:
				rec.PublishDate = &when
			}
		}
		outcomes = append(outcomes, exec.PublishOne(ctx, blogID, rec))
	}
	s.record(ctx, domain.RunKindPublishSheet, userID, sheetID, blogID, started, outcomes)

	return outcomes, nil
}

// classify reads the whole sheet with the scheduling columns and buckets its
// titled rows.
func (s *ScheduleService) classify(
	ctx context.Context,
	userID, sheetID string,
	now time.Time,
) (domain.ClassifiedBatch, error) {
	table, err := s.readTable(ctx, userID, sheetID, scheduleColumns...)
	if err != nil {
		return domain.ClassifiedBatch{}, err
	}
	return s.classifier.Classify(table.Posts(), now), nil
}

// readTable resolves credentials and reads and parses the whole sheet.
func (s *ScheduleService) readTable(
	ctx context.Context,
	userID, sheetID string,
	required ...string,
) (*domain.SheetTable, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("%w: sheet ID is required", domain.ErrInvalidInput)
	}
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return nil, err
	}

	reader, err := s.clients.TableReader(ctx, userID)
	if err != nil {
		return nil, err
	}
	grid, err := reader.ReadRange(ctx, sheetID, domain.FullSheetRange)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return ParseSheet(grid, required...)
}

// record stores a run in history. Failures are logged and dropped.
func (s *ScheduleService) record(
	ctx context.Context,
	kind domain.RunKind,
	userID, sheetID, blogID string,
	started time.Time,
	outcomes []domain.PublishOutcome,
) {
	if s.runs == nil {
		return
	}
	run := domain.Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		UserID:    userID,
		SheetID:   sheetID,
		BlogID:    blogID,
		StartedAt: started,
		EndedAt:   s.clock(),
		Outcomes:  outcomes,
	}
	if err := s.runs.Record(ctx, run); err != nil {
		logger.Warn("Failed to record %s run: %v", kind, err)
		return
	}
	if s.keepRuns > 0 {
		if err := s.runs.Prune(ctx, s.keepRuns); err != nil {
			logger.Warn("Failed to prune run history: %v", err)
		}
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
