package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// mockScheduleService records the target of the last call.
type mockScheduleService struct {
	pending  []domain.PendingPost
	outcome  domain.PublishOutcome
	sweep    *domain.SweepResult
	outcomes []domain.PublishOutcome
	err      error

	sheetID string
	blogID  string
	row     int
}

func (m *mockScheduleService) ListPending(_ context.Context, _, sheetID string, _ time.Time) ([]domain.PendingPost, error) {
	m.sheetID = sheetID
	return m.pending, m.err
}

func (m *mockScheduleService) PublishRowNow(_ context.Context, _, sheetID, blogID string, row int) (domain.PublishOutcome, error) {
	m.sheetID, m.blogID, m.row = sheetID, blogID, row
	return m.outcome, m.err
}

func (m *mockScheduleService) SweepDue(_ context.Context, _, sheetID, blogID string, _ time.Time) (*domain.SweepResult, error) {
	m.sheetID, m.blogID = sheetID, blogID
	if m.sweep == nil {
		return &domain.SweepResult{}, m.err
	}
	return m.sweep, m.err
}

func (m *mockScheduleService) PublishSheet(_ context.Context, _, sheetID, blogID string, _ time.Time) ([]domain.PublishOutcome, error) {
	m.sheetID, m.blogID = sheetID, blogID
	return m.outcomes, m.err
}

// mockSettingsService keeps settings in memory.
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

func (m *mockSettingsService) SaveGoogle(google domain.GoogleSettings) error {
	m.settings.Google = google
	return nil
}

func (m *mockSettingsService) SaveAccount(account domain.AccountSettings) error {
	m.settings.Account = account
	return nil
}

func (m *mockSettingsService) SaveDefaults(defaults domain.DefaultsSettings) error {
	if defaults.SheetID != "" {
		m.settings.Defaults.SheetID = defaults.SheetID
	}
	if defaults.BlogID != "" {
		m.settings.Defaults.BlogID = defaults.BlogID
	}
	return nil
}

// mockBlogService is a mock implementation of driving.BlogService.
type mockBlogService struct {
	blogs []domain.Blog
	posts []domain.Post
	err   error

	input   domain.PostInput
	patch   domain.PostPatch
	deleted string
}

func (m *mockBlogService) ListBlogs(context.Context, string) ([]domain.Blog, error) {
	return m.blogs, m.err
}

func (m *mockBlogService) GetBlog(_ context.Context, _, blogID string) (*domain.Blog, error) {
	for i := range m.blogs {
		if m.blogs[i].ID == blogID {
			return &m.blogs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBlogService) ListPosts(context.Context, string, string, int64) ([]domain.Post, error) {
	return m.posts, m.err
}

func (m *mockBlogService) CreatePost(_ context.Context, _, _ string, input domain.PostInput) (*domain.PublishedPost, error) {
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PublishedPost{ID: "new-post", URL: "https://example.blogspot.com/new-post"}, nil
}

func (m *mockBlogService) GetPost(_ context.Context, _, _, postID string) (*domain.Post, error) {
	for i := range m.posts {
		if m.posts[i].ID == postID {
			return &m.posts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBlogService) UpdatePost(_ context.Context, _, _, postID string, patch domain.PostPatch) (*domain.Post, error) {
	m.patch = patch
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Post{ID: postID}, nil
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
	runs     []domain.Run
	prunedTo *int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.Run, error) {
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Run, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Prune(_ context.Context, keep int) error {
	m.prunedTo = &keep
	return nil
}

// mockCredentialsService records saved bundles.
type mockCredentialsService struct {
	saved     []domain.CredentialBundle
	forgotten []string
}

func (m *mockCredentialsService) Resolve(_ context.Context, userID string) (*domain.CredentialBundle, error) {
	for i := range m.saved {
		if m.saved[i].UserID == userID {
			return &m.saved[i], nil
		}
	}
	return nil, domain.ErrAuthExpired
}

func (m *mockCredentialsService) Save(_ context.Context, bundle domain.CredentialBundle) error {
	m.saved = append(m.saved, bundle)
	return nil
}

func (m *mockCredentialsService) Invalidate(context.Context, string) error { return nil }

func (m *mockCredentialsService) Forget(_ context.Context, userID string) error {
	m.forgotten = append(m.forgotten, userID)
	return nil
}

// mockAuthService returns a fixed bundle and hands the URL to openURL.
type mockAuthService struct {
	url    string
	bundle *domain.CredentialBundle
	err    error
}

func (m *mockAuthService) Login(_ context.Context, openURL func(string) error) (*domain.CredentialBundle, error) {
	if openURL != nil {
		_ = openURL(m.url)
	}
	return m.bundle, m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	schedule    *mockScheduleService
	settings    *mockSettingsService
	blog        *mockBlogService
	sheet       *mockSheetService
	history     *mockHistoryService
	credentials *mockCredentialsService
	auth        *mockAuthService
	authGoogle  domain.GoogleSettings
	authPort    int
}

// setupTestServices installs mocks for a signed-in account with default
// sheet and blog. The returned cleanup restores the package state.
func setupTestServices() (*testServices, func()) {
	settings := domain.DefaultAppSettings()
	settings.Google = domain.GoogleSettings{ClientID: "cid", ClientSecret: "client-secret-value", RedirectPort: 8085}
	settings.Account = domain.AccountSettings{UserID: "u1", Email: "me@example.com", RefreshToken: "rt"}
	settings.Defaults = domain.DefaultsSettings{SheetID: "default-sheet", BlogID: "default-blog"}

	ts := &testServices{
		schedule:    &mockScheduleService{},
		settings:    &mockSettingsService{settings: settings},
		blog:        &mockBlogService{},
		sheet:       &mockSheetService{},
		history:     &mockHistoryService{},
		credentials: &mockCredentialsService{},
		auth: &mockAuthService{
			url:    "https://accounts.example.com/auth",
			bundle: &domain.CredentialBundle{UserID: "u2", Email: "new@example.com"},
		},
	}

	SetServices(&Services{
		Schedule:    ts.schedule,
		Settings:    ts.settings,
		Blog:        ts.blog,
		Sheet:       ts.sheet,
		History:     ts.history,
		Credentials: ts.credentials,
		Auth: func(g domain.GoogleSettings, port int) (driving.AuthService, error) {
			ts.authGoogle, ts.authPort = g, port
			return ts.auth, nil
		},
	})

	return ts, func() {
		SetServices(nil)
		bootstrap = nil
		closeServices = nil
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	}
}

// resetFlags restores every flag to its default so values do not leak
// between rootCmd.Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
