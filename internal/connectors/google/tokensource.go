package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// CredentialResolver returns a usable credential bundle for a user,
// refreshing it when needed.
type CredentialResolver interface {
	Resolve(ctx context.Context, userID string) (*domain.CredentialBundle, error)
}

// TokenSourceAdapter adapts a CredentialResolver to oauth2.TokenSource so
// Google API clients always go through the credential store's refresh logic.
type TokenSourceAdapter struct {
	resolver CredentialResolver
	userID   string
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource for one user. The result is
// wrapped in oauth2.ReuseTokenSource so a valid token is reused until it
// expires.
func NewTokenSource(ctx context.Context, resolver CredentialResolver, userID string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &TokenSourceAdapter{
		resolver: resolver,
		userID:   userID,
		ctx:      ctx,
	})
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	bundle, err := t.resolver.Resolve(t.ctx, t.userID)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  bundle.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: bundle.RefreshToken,
		Expiry:       bundle.Expiry,
	}, nil
}
