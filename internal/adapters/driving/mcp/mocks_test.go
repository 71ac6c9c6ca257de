package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// mockScheduleService records the target of the last call.
type mockScheduleService struct {
	pending  []domain.PendingPost
	outcome  domain.PublishOutcome
	sweep    *domain.SweepResult
	outcomes []domain.PublishOutcome
	err      error

	userID  string
	sheetID string
	blogID  string
	row     int
}

func (m *mockScheduleService) ListPending(_ context.Context, userID, sheetID string, _ time.Time) ([]domain.PendingPost, error) {
	m.userID, m.sheetID = userID, sheetID
	return m.pending, m.err
}

func (m *mockScheduleService) PublishRowNow(_ context.Context, userID, sheetID, blogID string, row int) (domain.PublishOutcome, error) {
	m.userID, m.sheetID, m.blogID, m.row = userID, sheetID, blogID, row
	return m.outcome, m.err
}

func (m *mockScheduleService) SweepDue(_ context.Context, userID, sheetID, blogID string, _ time.Time) (*domain.SweepResult, error) {
	m.userID, m.sheetID, m.blogID = userID, sheetID, blogID
	return m.sweep, m.err
}

func (m *mockScheduleService) PublishSheet(_ context.Context, userID, sheetID, blogID string, _ time.Time) ([]domain.PublishOutcome, error) {
	m.userID, m.sheetID, m.blogID = userID, sheetID, blogID
	return m.outcomes, m.err
}

// mockSettingsService returns fixed settings.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) SaveGoogle(domain.GoogleSettings) error     { return nil }
func (m *mockSettingsService) SaveAccount(domain.AccountSettings) error   { return nil }
func (m *mockSettingsService) SaveDefaults(domain.DefaultsSettings) error { return nil }

func signedInSettings() *mockSettingsService {
	s := domain.DefaultAppSettings()
	s.Account = domain.AccountSettings{UserID: "u1", Email: "me@example.com", RefreshToken: "secret-refresh", AccessToken: "secret-access"}
	s.Defaults = domain.DefaultsSettings{SheetID: "default-sheet", BlogID: "default-blog"}
	return &mockSettingsService{settings: s}
}

// mockBlogService is a mock implementation of driving.BlogService.
type mockBlogService struct {
	blogs   []domain.Blog
	posts   []domain.Post
	post    *domain.Post
	created *domain.PublishedPost
	err     error

	input   domain.PostInput
	patch   domain.PostPatch
	deleted string
}

func (m *mockBlogService) ListBlogs(context.Context, string) ([]domain.Blog, error) {
	return m.blogs, m.err
}

func (m *mockBlogService) GetBlog(context.Context, string, string) (*domain.Blog, error) {
	if len(m.blogs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.blogs[0], m.err
}

func (m *mockBlogService) ListPosts(context.Context, string, string, int64) ([]domain.Post, error) {
	return m.posts, m.err
}

func (m *mockBlogService) CreatePost(_ context.Context, _, _ string, input domain.PostInput) (*domain.PublishedPost, error) {
	m.input = input
	return m.created, m.err
}

func (m *mockBlogService) GetPost(context.Context, string, string, string) (*domain.Post, error) {
	return m.post, m.err
}

func (m *mockBlogService) UpdatePost(_ context.Context, _, _, _ string, patch domain.PostPatch) (*domain.Post, error) {
	m.patch = patch
	return m.post, m.err
}

func (m *mockBlogService) DeletePost(_ context.Context, _, _, postID string) error {
	m.deleted = postID
	return m.err
}

// mockSheetService is a mock implementation of driving.SheetService.
type mockSheetService struct {
	sheets     []domain.Spreadsheet
	meta       *domain.SpreadsheetMetadata
	data       *domain.SheetData
	validation *domain.SheetValidation
	err        error
	rangeSpec  string
}

func (m *mockSheetService) ListSpreadsheets(context.Context, string) ([]domain.Spreadsheet, error) {
	return m.sheets, m.err
}

func (m *mockSheetService) Metadata(context.Context, string, string) (*domain.SpreadsheetMetadata, error) {
	return m.meta, m.err
}

func (m *mockSheetService) Data(_ context.Context, _, _, rangeSpec string) (*domain.SheetData, error) {
	m.rangeSpec = rangeSpec
	return m.data, m.err
}

func (m *mockSheetService) Validate(context.Context, string, string) (*domain.SheetValidation, error) {
	return m.validation, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.Run
	err  error
}

func (m *mockHistoryService) Recent(context.Context, int) ([]domain.Run, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Prune(context.Context, int) error { return m.err }

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Run, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
