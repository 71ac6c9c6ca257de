package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// BlogCatalog lists blogs and posts owned by the user.
type BlogCatalog interface {
	// ListBlogs returns the blogs owned by the authenticated user.
	ListBlogs(ctx context.Context) ([]domain.Blog, error)

	// GetBlog returns a single blog.
	GetBlog(ctx context.Context, blogID string) (*domain.Blog, error)

	// ListPosts returns up to maxResults recent posts of a blog.
	ListPosts(ctx context.Context, blogID string, maxResults int64) ([]domain.Post, error)
}

// SheetCatalog lists spreadsheets and their tabs.
type SheetCatalog interface {
	// ListSpreadsheets returns the spreadsheets visible to the user.
	ListSpreadsheets(ctx context.Context) ([]domain.Spreadsheet, error)

	// Metadata returns a spreadsheet's title and tabs.
	Metadata(ctx context.Context, sheetID string) (*domain.SpreadsheetMetadata, error)
}
