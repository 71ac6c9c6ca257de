package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore keeps one credential bundle per user for the lifetime of
// the process. Bundles are copied on the way in and out.
type CredentialsStore struct {
	mu      sync.RWMutex
	bundles map[string]domain.CredentialBundle
}

// NewCredentialsStore creates a new in-memory credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{
		bundles: make(map[string]domain.CredentialBundle),
	}
}

// Save stores or replaces the bundle for bundle.UserID.
func (s *CredentialsStore) Save(_ context.Context, bundle domain.CredentialBundle) error {
	if bundle.UserID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[bundle.UserID] = *bundle.Clone()
	return nil
}

// Get retrieves the bundle for a user.
func (s *CredentialsStore) Get(_ context.Context, userID string) (*domain.CredentialBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bundle, ok := s.bundles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return bundle.Clone(), nil
}

// Delete removes a user's bundle.
func (s *CredentialsStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bundles, userID)
	return nil
}

// List returns the IDs of every stored user, sorted.
func (s *CredentialsStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.bundles))
	for id := range s.bundles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
