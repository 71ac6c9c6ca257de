package driving

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// BlogService manages blogs and individual posts.
type BlogService interface {
	// ListBlogs returns the blogs owned by the user.
	ListBlogs(ctx context.Context, userID string) ([]domain.Blog, error)

	// GetBlog returns one blog.
	GetBlog(ctx context.Context, userID, blogID string) (*domain.Blog, error)

	// ListPosts returns recent posts. maxResults <= 0 uses the default.
	ListPosts(ctx context.Context, userID, blogID string, maxResults int64) ([]domain.Post, error)

	// CreatePost publishes an ad-hoc post.
	CreatePost(ctx context.Context, userID, blogID string, input domain.PostInput) (*domain.PublishedPost, error)

	// GetPost fetches one post.
	GetPost(ctx context.Context, userID, blogID, postID string) (*domain.Post, error)

	// UpdatePost applies a partial update, preserving omitted fields.
	UpdatePost(ctx context.Context, userID, blogID, postID string, patch domain.PostPatch) (*domain.Post, error)

	// DeletePost removes a post.
	DeletePost(ctx context.Context, userID, blogID, postID string) error
}
