package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Ensure BlogService implements the interface.
var _ driving.BlogService = (*BlogService)(nil)

// DefaultListPosts is the page size used when ListPosts is given zero.
const DefaultListPosts = 10

// BlogService manages individual blog posts outside of a sheet.
type BlogService struct {
	credentials driving.CredentialsService
	clients     driven.ClientFactory
	loc         *time.Location
}

// NewBlogService creates a blog service.
func NewBlogService(credentials driving.CredentialsService, clients driven.ClientFactory, loc *time.Location) *BlogService {
	if loc == nil {
		loc = time.UTC
	}
	return &BlogService{
		credentials: credentials,
		clients:     clients,
		loc:         loc,
	}
}

// ListBlogs lists the blogs owned by the user.
func (s *BlogService) ListBlogs(ctx context.Context, userID string) ([]domain.Blog, error) {
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.ListBlogs(ctx)
}

// GetBlog returns a single blog.
func (s *BlogService) GetBlog(ctx context.Context, userID, blogID string) (*domain.Blog, error) {
	if blogID == "" {
		return nil, fmt.Errorf("%w: blog ID is required", domain.ErrInvalidInput)
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.GetBlog(ctx, blogID)
}

// ListPosts returns the most recent posts of a blog.
func (s *BlogService) ListPosts(ctx context.Context, userID, blogID string, maxResults int64) ([]domain.Post, error) {
	if blogID == "" {
		return nil, fmt.Errorf("%w: blog ID is required", domain.ErrInvalidInput)
	}
	if maxResults <= 0 {
		maxResults = DefaultListPosts
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.ListPosts(ctx, blogID, maxResults)
}

// CreatePost creates a post from ad-hoc input.
func (s *BlogService) CreatePost(
	ctx context.Context,
	userID, blogID string,
	input domain.PostInput,
) (*domain.PublishedPost, error) {
	var missing []string
	if blogID == "" {
		missing = append(missing, "blog_id")
	}
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	payload := domain.PostPayload{
		Title:   input.Title,
		Content: input.Content,
		Labels:  []string(input.Labels),
		IsDraft: input.IsDraft,
	}
	if strings.TrimSpace(input.PublishDate) != "" {
		when, err := domain.ParsePublishDate(input.PublishDate, s.loc)
		if err != nil {
			return nil, err
		}
		payload.Published = &when
	}

	publisher, err := s.publisher(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publisher.Create(ctx, blogID, payload)
}

// GetPost returns a single post.
func (s *BlogService) GetPost(ctx context.Context, userID, blogID, postID string) (*domain.Post, error) {
	if err := requirePostRef(blogID, postID); err != nil {
		return nil, err
	}
	publisher, err := s.publisher(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publisher.Get(ctx, blogID, postID)
}

// UpdatePost fetches the post, applies only the fields present in patch and
// submits the merged post.
func (s *BlogService) UpdatePost(
	ctx context.Context,
	userID, blogID, postID string,
	patch domain.PostPatch,
) (*domain.Post, error) {
	if err := requirePostRef(blogID, postID); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	publisher, err := s.publisher(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := publisher.Get(ctx, blogID, postID)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	patch.ApplyTo(existing)

	return publisher.Update(ctx, blogID, postID, *existing)
}

// DeletePost deletes a post.
func (s *BlogService) DeletePost(ctx context.Context, userID, blogID, postID string) error {
	if err := requirePostRef(blogID, postID); err != nil {
		return err
	}
	publisher, err := s.publisher(ctx, userID)
	if err != nil {
		return err
	}
	return publisher.Delete(ctx, blogID, postID)
}

func (s *BlogService) publisher(ctx context.Context, userID string) (driven.Publisher, error) {
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return nil, err
	}
	return s.clients.Publisher(ctx, userID)
}

func (s *BlogService) catalog(ctx context.Context, userID string) (driven.BlogCatalog, error) {
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return nil, err
	}
	return s.clients.BlogCatalog(ctx, userID)
}

func requirePostRef(blogID, postID string) error {
	if blogID == "" || postID == "" {
		return fmt.Errorf("%w: blog ID and post ID are required", domain.ErrInvalidInput)
	}
	return nil
}
