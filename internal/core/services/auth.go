package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// DefaultLoginTimeout bounds how long Login waits for the browser callback.
const DefaultLoginTimeout = 5 * time.Minute

// PKCE code verifier length (RFC 7636 allows 43-128 characters).
const codeVerifierBytes = 64

// AuthService runs the interactive Google sign-in.
type AuthService struct {
	oauth       driven.OAuthClient
	callback    driven.CallbackReceiver
	credentials driving.CredentialsService
	settings    driving.SettingsService
	timeout     time.Duration
}

// NewAuthService creates an auth service.
func NewAuthService(
	oauth driven.OAuthClient,
	callback driven.CallbackReceiver,
	credentials driving.CredentialsService,
	settings driving.SettingsService,
) *AuthService {
	return &AuthService{
		oauth:       oauth,
		callback:    callback,
		credentials: credentials,
		settings:    settings,
		timeout:     DefaultLoginTimeout,
	}
}

// Login opens the consent page, waits for the redirect, exchanges the code
// and stores the resulting credentials both in memory and in the config file.
// openURL failing is not fatal; the URL is also logged.
func (s *AuthService) Login(ctx context.Context, openURL func(string) error) (*domain.CredentialBundle, error) {
	state, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier, err := randomToken(codeVerifierBytes)
	if err != nil {
		return nil, fmt.Errorf("generate code verifier: %w", err)
	}

	if err := s.callback.Start(state); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer func() {
		if err := s.callback.Stop(); err != nil {
			logger.Debug("Stopping callback server: %v", err)
		}
	}()

	redirectURI := s.callback.RedirectURI()
	authURL := s.oauth.AuthURL(redirectURI, state, verifier)
	logger.Info("Authorisation URL: %s", authURL)
	if openURL != nil {
		if err := openURL(authURL); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	code, err := s.callback.Wait(waitCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthExpired, err)
	}

	bundle, err := s.oauth.Exchange(ctx, code, redirectURI, verifier)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %w", domain.ErrAuthExpired, err)
	}
	if bundle.RefreshToken == "" {
		logger.Warn("Google returned no refresh token; access will stop when the token expires")
	}

	info, err := s.oauth.UserInfo(ctx, bundle.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	bundle.UserID = info.ID
	bundle.Email = info.Email

	if err := s.credentials.Save(ctx, *bundle); err != nil {
		return nil, err
	}
	if err := s.settings.SaveAccount(domain.AccountSettings{
		UserID:       bundle.UserID,
		Email:        bundle.Email,
		AccessToken:  bundle.AccessToken,
		RefreshToken: bundle.RefreshToken,
		Expiry:       bundle.Expiry,
	}); err != nil {
		return nil, err
	}

	logger.Info("Signed in as %s (%s)", bundle.Email, bundle.UserID)
	return bundle, nil
}

// randomToken returns n random bytes, base64url encoded without padding.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
