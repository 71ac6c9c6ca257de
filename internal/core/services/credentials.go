package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// Ensure CredentialsService implements the interface.
var _ driving.CredentialsService = (*CredentialsService)(nil)

// DefaultRefreshBuffer is how long before expiry a token is refreshed.
const DefaultRefreshBuffer = 5 * time.Minute

// CredentialsService owns every user's credential bundle and refreshes
// expired access tokens on demand. It is the only writer of the store.
type CredentialsService struct {
	store         driven.CredentialsStore
	refresher     driven.TokenRefresher
	refreshBuffer time.Duration
	now           func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCredentialsService creates a credentials service.
func NewCredentialsService(store driven.CredentialsStore, refresher driven.TokenRefresher) *CredentialsService {
	return &CredentialsService{
		store:         store,
		refresher:     refresher,
		refreshBuffer: DefaultRefreshBuffer,
		now:           time.Now,
		locks:         make(map[string]*sync.Mutex),
	}
}

// SetRefreshBuffer changes how early tokens are refreshed. Zero refreshes
// only once the expiry has passed.
func (s *CredentialsService) SetRefreshBuffer(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.refreshBuffer = d
}

// userLock returns the mutex serialising refreshes for one user.
func (s *CredentialsService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Resolve returns a usable bundle for the user. An expired or stale token is
// refreshed once and written back before returning; refresh failures are not
// retried.
func (s *CredentialsService) Resolve(ctx context.Context, userID string) (*domain.CredentialBundle, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: no user signed in", domain.ErrAuthExpired)
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	bundle, err := s.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: no credentials for user %s", domain.ErrAuthExpired, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}

	if !bundle.NeedsRefresh(s.now(), s.refreshBuffer) {
		return bundle.Clone(), nil
	}
	if !bundle.CanRefresh() {
		return nil, fmt.Errorf("%w: access token expired and no refresh token", domain.ErrAuthExpired)
	}

	logger.Info("Refreshing access token for user %s", userID)
	refreshed, err := s.refresher.Refresh(ctx, *bundle.Clone())
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthExpired, err)
	}

	bundle.AccessToken = refreshed.AccessToken
	bundle.Expiry = refreshed.Expiry
	if refreshed.RefreshToken != "" {
		bundle.RefreshToken = refreshed.RefreshToken
	}
	if len(refreshed.Scopes) > 0 {
		bundle.Scopes = refreshed.Scopes
	}
	bundle.Stale = false

	if err := s.store.Save(ctx, *bundle); err != nil {
		return nil, fmt.Errorf("save refreshed credentials: %w", err)
	}
	logger.Debug("Access token for %s valid until %s", userID, bundle.Expiry.Format(time.RFC3339))

	return bundle.Clone(), nil
}

// Save stores a bundle, replacing any existing one for the user.
func (s *CredentialsService) Save(ctx context.Context, bundle domain.CredentialBundle) error {
	if bundle.UserID == "" {
		return fmt.Errorf("%w: credentials have no user ID", domain.ErrInvalidInput)
	}
	if bundle.TokenURL == "" {
		bundle.TokenURL = domain.GoogleTokenURL
	}

	l := s.userLock(bundle.UserID)
	l.Lock()
	defer l.Unlock()

	return s.store.Save(ctx, *bundle.Clone())
}

// Invalidate marks the user's access token stale.
func (s *CredentialsService) Invalidate(ctx context.Context, userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	bundle, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	bundle.Stale = true
	return s.store.Save(ctx, *bundle)
}

// Forget removes the user's bundle.
func (s *CredentialsService) Forget(ctx context.Context, userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.locks[userID] == l {
		delete(s.locks, userID)
	}
	s.mu.Unlock()
	return nil
}
