package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// UserInfo identifies the account that completed an OAuth login.
type UserInfo struct {
	ID    string
	Email string
	Name  string
}

// OAuthClient performs the consent side of the OAuth flow.
type OAuthClient interface {
	// AuthURL builds the consent URL for the given redirect, state and PKCE verifier.
	AuthURL(redirectURI, state, codeVerifier string) string

	// Exchange trades an authorization code for a credential bundle.
	// The returned bundle has no UserID set.
	Exchange(ctx context.Context, code, redirectURI, codeVerifier string) (*domain.CredentialBundle, error)

	// UserInfo fetches the account behind an access token.
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// CallbackReceiver waits for the OAuth redirect on a loopback address.
type CallbackReceiver interface {
	// Start begins listening. state is the expected CSRF state value.
	Start(state string) error

	// RedirectURI returns the URI registered as the OAuth redirect.
	RedirectURI() string

	// Wait blocks until the authorization code arrives or ctx is done.
	Wait(ctx context.Context) (string, error)

	// Stop shuts the listener down.
	Stop() error
}
