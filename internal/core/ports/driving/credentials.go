package driving

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// CredentialsService manages per-user OAuth credentials.
type CredentialsService interface {
	// Resolve returns a usable bundle for the user, refreshing it if expired.
	// Fails with domain.ErrAuthExpired when no bundle exists or refresh fails.
	Resolve(ctx context.Context, userID string) (*domain.CredentialBundle, error)

	// Save stores a bundle obtained from a login.
	Save(ctx context.Context, bundle domain.CredentialBundle) error

	// Invalidate marks the user's access token as rejected so the next
	// Resolve refreshes it.
	Invalidate(ctx context.Context, userID string) error

	// Forget removes the user's bundle.
	Forget(ctx context.Context, userID string) error
}
