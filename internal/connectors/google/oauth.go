package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Ensure OAuthClient implements the interfaces.
var (
	_ driven.OAuthClient    = (*OAuthClient)(nil)
	_ driven.TokenRefresher = (*OAuthClient)(nil)
)

// OAuthClient implements the Google OAuth operations: consent URL, code
// exchange, token refresh and profile lookup.
type OAuthClient struct {
	clientID     string
	clientSecret string
	scopes       []string
	endpoint     oauth2.Endpoint
	userInfo     func(ctx context.Context, ts oauth2.TokenSource) (*driven.UserInfo, error)
}

// NewOAuthClient creates a Google OAuth client. Nil scopes means
// domain.DefaultScopes.
func NewOAuthClient(clientID, clientSecret string, scopes []string) *OAuthClient {
	if scopes == nil {
		scopes = domain.DefaultScopes()
	}
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		scopes:       scopes,
		endpoint:     googleoauth.Endpoint,
		userInfo:     fetchUserInfo,
	}
}

func (c *OAuthClient) config(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Endpoint:     c.endpoint,
		RedirectURL:  redirectURI,
		Scopes:       c.scopes,
	}
}

// AuthURL builds the consent URL. Google only returns a refresh token for
// access_type=offline, and only reliably with prompt=consent.
func (c *OAuthClient) AuthURL(redirectURI, state, codeVerifier string) string {
	return c.config(redirectURI).AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(codeVerifier),
	)
}

// Exchange trades an authorization code for a credential bundle. The
// bundle has no user ID yet.
func (c *OAuthClient) Exchange(
	ctx context.Context,
	code, redirectURI, codeVerifier string,
) (*domain.CredentialBundle, error) {
	cfg := c.config(redirectURI)
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	return &domain.CredentialBundle{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURL:     c.endpoint.TokenURL,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Scopes:       append([]string(nil), c.scopes...),
		Expiry:       token.Expiry,
	}, nil
}

// Refresh obtains a new access token with the bundle's refresh token. The
// bundle's own client credentials and token URL take precedence.
func (c *OAuthClient) Refresh(ctx context.Context, bundle domain.CredentialBundle) (*domain.CredentialBundle, error) {
	if bundle.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", domain.ErrAuthExpired)
	}

	cfg := c.config("")
	if bundle.ClientID != "" {
		cfg.ClientID = bundle.ClientID
		cfg.ClientSecret = bundle.ClientSecret
	}
	if bundle.TokenURL != "" {
		cfg.Endpoint.TokenURL = bundle.TokenURL
	}

	// An expired token forces the source to hit the token endpoint.
	token, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: bundle.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %w", domain.ErrAuthExpired, err)
	}

	refreshed := bundle
	refreshed.AccessToken = token.AccessToken
	refreshed.Expiry = token.Expiry
	if token.RefreshToken != "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	refreshed.Stale = false
	return &refreshed, nil
}

// UserInfo fetches the Google account ID and email for an access token.
func (c *OAuthClient) UserInfo(ctx context.Context, accessToken string) (*driven.UserInfo, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return c.userInfo(ctx, ts)
}

func fetchUserInfo(ctx context.Context, ts oauth2.TokenSource) (*driven.UserInfo, error) {
	svc, err := NewUserInfoService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, WrapError(err, "fetch user info")
	}
	return &driven.UserInfo{ID: info.Id, Email: info.Email, Name: info.Name}, nil
}
