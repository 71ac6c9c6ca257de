package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFileName), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsAreRecorded(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()
	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewStore_InvalidDir(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestRunStore_RecordAndGet(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()
	started := time.Date(2024, 1, 2, 9, 0, 0, 123000000, time.UTC)

	run := domain.Run{
		ID:        "run-1",
		Kind:      domain.RunKindSweep,
		UserID:    "u1",
		SheetID:   "s1",
		BlogID:    "b1",
		StartedAt: started,
		EndedAt:   started.Add(2 * time.Second),
		Outcomes: []domain.PublishOutcome{
			{Row: 2, Title: "Hello", Status: domain.OutcomeSuccess, PostID: "p1", URL: "https://x/p1"},
			{Row: 4, Title: "Bad", Status: domain.OutcomeError, Message: "remote service rejected request: 400"},
		},
	}
	require.NoError(t, runs.Record(ctx, run))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Kind, got.Kind)
	assert.Equal(t, "b1", got.BlogID)
	assert.True(t, started.Equal(got.StartedAt))
	assert.True(t, run.EndedAt.Equal(got.EndedAt))
	assert.Equal(t, run.Outcomes, got.Outcomes)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	_, err := runs.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_Record_DuplicateID(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	require.NoError(t, runs.Record(ctx, domain.Run{ID: "r1", Kind: domain.RunKindSweep}))
	assert.Error(t, runs.Record(ctx, domain.Run{ID: "r1", Kind: domain.RunKindSweep}))

	assert.ErrorIs(t, runs.Record(ctx, domain.Run{Kind: domain.RunKindSweep}), domain.ErrInvalidInput)
}

func TestRunStore_ListAndPrune(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, runs.Record(ctx, domain.Run{
			ID:       fmt.Sprintf("r%d", i),
			Kind:     domain.RunKindPublishRow,
			Outcomes: []domain.PublishOutcome{{Row: i + 1, Status: domain.OutcomeSuccess}},
		}))
	}

	recent, err := runs.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "r5", recent[0].ID)
	assert.Equal(t, "r3", recent[2].ID)
	assert.Equal(t, 6, recent[0].Outcomes[0].Row)

	require.NoError(t, runs.Prune(ctx, 2))

	all, err := runs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r5", all[0].ID)
	assert.Equal(t, "r4", all[1].ID)

	_, err = runs.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_List_ZeroLimit(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	list, err := runs.List(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, list)
}
