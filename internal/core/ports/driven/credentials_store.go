package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// CredentialsStore holds one credential bundle per user.
// Only the credentials service writes to it.
type CredentialsStore interface {
	// Save stores a bundle. Creates if new, replaces if it exists.
	Save(ctx context.Context, bundle domain.CredentialBundle) error

	// Get retrieves the bundle for a user.
	// Returns domain.ErrNotFound if the user has no bundle.
	Get(ctx context.Context, userID string) (*domain.CredentialBundle, error)

	// Delete removes a user's bundle.
	Delete(ctx context.Context, userID string) error

	// List returns the IDs of all users with a bundle.
	List(ctx context.Context) ([]string, error)
}
