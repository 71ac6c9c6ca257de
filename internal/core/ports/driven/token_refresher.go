package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// TokenRefresher exchanges a refresh token for a new access token at the
// bundle's token endpoint.
type TokenRefresher interface {
	// Refresh returns the refreshed bundle. The input is not modified.
	// Any failure is reported as domain.ErrAuthExpired.
	Refresh(ctx context.Context, bundle domain.CredentialBundle) (*domain.CredentialBundle, error)
}
