package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockTableReader serves grids by range spec.
type mockTableReader struct {
	mu     sync.Mutex
	grids  map[string][][]string
	err    error
	ranges []string
}

func newMockTableReader(grids map[string][][]string) *mockTableReader {
	return &mockTableReader{grids: grids}
}

func (m *mockTableReader) ReadRange(_ context.Context, _, rangeSpec string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges = append(m.ranges, rangeSpec)
	if m.err != nil {
		return nil, m.err
	}
	return m.grids[rangeSpec], nil
}

// mockPublisher records payloads and fails on configured titles.
type mockPublisher struct {
	mu        sync.Mutex
	created   []domain.PostPayload
	failOn    map[string]error
	posts     map[string]domain.Post
	updated   []domain.Post
	deleted   []string
	getErr    error
	updateErr error
	nextID    int
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{
		failOn: make(map[string]error),
		posts:  make(map[string]domain.Post),
	}
}

func (m *mockPublisher) Create(_ context.Context, blogID string, payload domain.PostPayload) (*domain.PublishedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, payload)
	if err, ok := m.failOn[payload.Title]; ok {
		return nil, err
	}
	m.nextID++
	id := fmt.Sprintf("post-%d", m.nextID)
	return &domain.PublishedPost{ID: id, URL: fmt.Sprintf("https://%s.example.com/%s", blogID, id)}, nil
}

func (m *mockPublisher) Get(_ context.Context, _, postID string) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	post, ok := m.posts[postID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (m *mockPublisher) Update(_ context.Context, _, postID string, post domain.Post) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updated = append(m.updated, post)
	post.ID = postID
	m.posts[postID] = post
	return &post, nil
}

func (m *mockPublisher) Delete(_ context.Context, _, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postID]; !ok {
		return domain.Rejected("post %s not found", postID)
	}
	delete(m.posts, postID)
	m.deleted = append(m.deleted, postID)
	return nil
}

// mockCatalog implements both catalogs.
type mockCatalog struct {
	blogs  []domain.Blog
	posts  []domain.Post
	sheets []domain.Spreadsheet
	meta   *domain.SpreadsheetMetadata
	max    int64
}

func (m *mockCatalog) ListBlogs(context.Context) ([]domain.Blog, error) { return m.blogs, nil }

func (m *mockCatalog) GetBlog(_ context.Context, blogID string) (*domain.Blog, error) {
	for i := range m.blogs {
		if m.blogs[i].ID == blogID {
			return &m.blogs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) ListPosts(_ context.Context, _ string, maxResults int64) ([]domain.Post, error) {
	m.max = maxResults
	return m.posts, nil
}

func (m *mockCatalog) ListSpreadsheets(context.Context) ([]domain.Spreadsheet, error) {
	return m.sheets, nil
}

func (m *mockCatalog) Metadata(_ context.Context, sheetID string) (*domain.SpreadsheetMetadata, error) {
	if m.meta == nil || m.meta.SpreadsheetID != sheetID {
		return nil, domain.ErrNotFound
	}
	return m.meta, nil
}

// mockClientFactory hands out fixed clients.
type mockClientFactory struct {
	reader    *mockTableReader
	publisher *mockPublisher
	catalog   *mockCatalog
}

func (m *mockClientFactory) TableReader(context.Context, string) (driven.TableReader, error) {
	return m.reader, nil
}

func (m *mockClientFactory) Publisher(context.Context, string) (driven.Publisher, error) {
	return m.publisher, nil
}

func (m *mockClientFactory) BlogCatalog(context.Context, string) (driven.BlogCatalog, error) {
	return m.catalog, nil
}

func (m *mockClientFactory) SheetCatalog(context.Context, string) (driven.SheetCatalog, error) {
	return m.catalog, nil
}

// mockRefresher counts refreshes and returns a fixed result.
type mockRefresher struct {
	mu     sync.Mutex
	calls  int
	result *domain.CredentialBundle
	err    error
}

func (m *mockRefresher) Refresh(_ context.Context, bundle domain.CredentialBundle) (*domain.CredentialBundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	bundle.AccessToken = fmt.Sprintf("refreshed-%d", m.calls)
	bundle.Expiry = time.Now().Add(time.Hour)
	return &bundle, nil
}

func (m *mockRefresher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

const testUser = "u1"

// newSignedInCredentials returns a credentials service holding a valid
// bundle for testUser.
func newSignedInCredentials(t *testing.T) *CredentialsService {
	t.Helper()
	svc := NewCredentialsService(memory.NewCredentialsStore(), &mockRefresher{})
	err := svc.Save(context.Background(), domain.CredentialBundle{
		UserID:       testUser,
		AccessToken:  "valid",
		RefreshToken: "rt",
		Expiry:       time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return svc
}
