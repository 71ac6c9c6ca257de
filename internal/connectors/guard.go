package connectors

import (
	"context"
	"errors"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// authGuard marks a user's access token stale when a remote call is
// rejected as unauthorised, so the next request refreshes it.
type authGuard struct {
	credentials driving.CredentialsService
	userID      string
}

func (g *authGuard) check(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, domain.ErrAuthExpired) {
		return err
	}
	// The request context may already be done; invalidation must still land.
	if ierr := g.credentials.Invalidate(context.WithoutCancel(ctx), g.userID); ierr != nil {
		logger.Debug("invalidate credentials for %s: %v", g.userID, ierr)
	}
	return err
}

type guardedReader struct {
	next  driven.TableReader
	guard *authGuard
}

func (r *guardedReader) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	grid, err := r.next.ReadRange(ctx, sheetID, rangeSpec)
	return grid, r.guard.check(ctx, err)
}

type guardedPublisher struct {
	next  driven.Publisher
	guard *authGuard
}

func (p *guardedPublisher) Create(ctx context.Context, blogID string, payload domain.PostPayload) (*domain.PublishedPost, error) {
	created, err := p.next.Create(ctx, blogID, payload)
	return created, p.guard.check(ctx, err)
}

func (p *guardedPublisher) Get(ctx context.Context, blogID, postID string) (*domain.Post, error) {
	post, err := p.next.Get(ctx, blogID, postID)
	return post, p.guard.check(ctx, err)
}

func (p *guardedPublisher) Update(ctx context.Context, blogID, postID string, post domain.Post) (*domain.Post, error) {
	updated, err := p.next.Update(ctx, blogID, postID, post)
	return updated, p.guard.check(ctx, err)
}

func (p *guardedPublisher) Delete(ctx context.Context, blogID, postID string) error {
	return p.guard.check(ctx, p.next.Delete(ctx, blogID, postID))
}

type guardedBlogCatalog struct {
	next  driven.BlogCatalog
	guard *authGuard
}

func (c *guardedBlogCatalog) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	blogs, err := c.next.ListBlogs(ctx)
	return blogs, c.guard.check(ctx, err)
}

func (c *guardedBlogCatalog) GetBlog(ctx context.Context, blogID string) (*domain.Blog, error) {
	blog, err := c.next.GetBlog(ctx, blogID)
	return blog, c.guard.check(ctx, err)
}

func (c *guardedBlogCatalog) ListPosts(ctx context.Context, blogID string, maxResults int64) ([]domain.Post, error) {
	posts, err := c.next.ListPosts(ctx, blogID, maxResults)
	return posts, c.guard.check(ctx, err)
}

type guardedSheetCatalog struct {
	next  driven.SheetCatalog
	guard *authGuard
}

func (c *guardedSheetCatalog) ListSpreadsheets(ctx context.Context) ([]domain.Spreadsheet, error) {
	sheets, err := c.next.ListSpreadsheets(ctx)
	return sheets, c.guard.check(ctx, err)
}

func (c *guardedSheetCatalog) Metadata(ctx context.Context, sheetID string) (*domain.SpreadsheetMetadata, error) {
	meta, err := c.next.Metadata(ctx, sheetID)
	return meta, c.guard.check(ctx, err)
}
