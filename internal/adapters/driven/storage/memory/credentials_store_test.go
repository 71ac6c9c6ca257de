package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

func TestCredentialsStore_SaveAndGet(t *testing.T) {
	store := NewCredentialsStore()
	ctx := context.Background()

	bundle := domain.CredentialBundle{
		UserID:       "u1",
		AccessToken:  "at",
		RefreshToken: "rt",
		Scopes:       []string{domain.ScopeBlogger},
		Expiry:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, bundle))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "at", got.AccessToken)
	assert.Equal(t, "rt", got.RefreshToken)
	assert.True(t, bundle.Expiry.Equal(got.Expiry))
}

func TestCredentialsStore_GetReturnsCopy(t *testing.T) {
	store := NewCredentialsStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.CredentialBundle{UserID: "u1", Scopes: []string{"a"}}))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	got.AccessToken = "mutated"
	got.Scopes[0] = "mutated"

	again, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.AccessToken)
	assert.Equal(t, []string{"a"}, again.Scopes)
}

func TestCredentialsStore_NotFound(t *testing.T) {
	store := NewCredentialsStore()

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialsStore_RequiresUserID(t *testing.T) {
	store := NewCredentialsStore()

	err := store.Save(context.Background(), domain.CredentialBundle{AccessToken: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCredentialsStore_DeleteAndList(t *testing.T) {
	store := NewCredentialsStore()
	ctx := context.Background()
	for _, id := range []string{"u2", "u1", "u3"} {
		require.NoError(t, store.Save(ctx, domain.CredentialBundle{UserID: id}))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, ids)

	require.NoError(t, store.Delete(ctx, "u2"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, ids)

	assert.NoError(t, store.Delete(ctx, "missing"))
}
