package driving

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// AuthService runs the interactive OAuth login.
type AuthService interface {
	// Login performs the consent flow. openURL is called with the consent URL
	// and may open a browser; its error is ignored.
	Login(ctx context.Context, openURL func(string) error) (*domain.CredentialBundle, error)
}
