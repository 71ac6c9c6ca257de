package domain

import "time"

// CredentialBundle stores the delegated OAuth credentials for one user.
// Bundles are owned by the credentials service; callers receive copies.
type CredentialBundle struct {
	// UserID is the Google account ID the bundle belongs to.
	UserID string `json:"user_id"`
	// Email is the account email, informational only.
	Email string `json:"email,omitempty"`

	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenURL is the OAuth token endpoint used for refresh.
	TokenURL string `json:"token_url"`
	// ClientID is the OAuth client the tokens were issued to.
	ClientID string `json:"client_id"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `json:"client_secret"`
	// Scopes are the granted OAuth scopes.
	Scopes []string `json:"scopes,omitempty"`

	// Expiry is when the access token expires. Zero means unknown.
	Expiry time.Time `json:"expiry,omitempty"`
	// Stale marks a token the remote side has rejected even though its
	// expiry is unknown or still in the future.
	Stale bool `json:"stale,omitempty"`
}

// NeedsRefresh reports whether the access token must be refreshed before use.
// A token expiring within buffer of now counts as expired.
func (b *CredentialBundle) NeedsRefresh(now time.Time, buffer time.Duration) bool {
	if b.Stale || b.AccessToken == "" {
		return true
	}
	if b.Expiry.IsZero() {
		return false
	}
	return !now.Before(b.Expiry.Add(-buffer))
}

// CanRefresh returns true if the bundle carries enough to call the token endpoint.
func (b *CredentialBundle) CanRefresh() bool {
	return b.RefreshToken != "" && b.TokenURL != ""
}

// HasScope reports whether scope was granted.
func (b *CredentialBundle) HasScope(scope string) bool {
	for _, s := range b.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the bundle.
func (b *CredentialBundle) Clone() *CredentialBundle {
	c := *b
	if b.Scopes != nil {
		c.Scopes = append([]string(nil), b.Scopes...)
	}
	return &c
}
