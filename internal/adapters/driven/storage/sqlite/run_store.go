package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Record stores a run and its outcomes in one transaction.
func (s *runStore) Record(ctx context.Context, run domain.Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, user_id, sheet_id, blog_id, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		string(run.Kind),
		run.UserID,
		run.SheetID,
		run.BlogID,
		formatNullableTime(run.StartedAt),
		formatNullableTime(run.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, o := range run.Outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_outcomes (run_id, position, sheet_row, title, status, post_id, url, message)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, o.Row, o.Title, string(o.Status), o.PostID, o.URL, o.Message)
		if err != nil {
			return fmt.Errorf("inserting outcome %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a run and its outcomes.
func (s *runStore) Get(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, kind, user_id, sheet_id, blog_id, started_at, ended_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadOutcomes(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		return []domain.Run{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, user_id, sheet_id, blog_id, started_at, ended_at
		FROM runs ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if err := s.loadOutcomes(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Prune keeps only the newest keep runs. Outcomes cascade.
func (s *runStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs WHERE seq NOT IN (
			SELECT seq FROM runs ORDER BY seq DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

func (s *runStore) loadOutcomes(ctx context.Context, run *domain.Run) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT sheet_row, title, status, post_id, url, message
		FROM run_outcomes WHERE run_id = ? ORDER BY position
	`, run.ID)
	if err != nil {
		return fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	run.Outcomes = []domain.PublishOutcome{}
	for rows.Next() {
		var o domain.PublishOutcome
		var status string
		if err := rows.Scan(&o.Row, &o.Title, &status, &o.PostID, &o.URL, &o.Message); err != nil {
			return fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = domain.OutcomeStatus(status)
		run.Outcomes = append(run.Outcomes, o)
	}
	return rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var kind string
	var startedAt, endedAt sql.NullString

	if err := row.Scan(&run.ID, &kind, &run.UserID, &run.SheetID, &run.BlogID, &startedAt, &endedAt); err != nil {
		return nil, err
	}

	run.Kind = domain.RunKind(kind)
	run.StartedAt = parseNullableTime(startedAt)
	run.EndedAt = parseNullableTime(endedAt)
	return &run, nil
}

// formatNullableTime formats a time as RFC3339Nano, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time for NULL or unparseable values.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
