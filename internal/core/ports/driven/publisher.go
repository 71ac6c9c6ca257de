package driven

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Publisher creates and edits posts on a blog.
// All methods may fail with domain.ErrRemoteUnavailable or a
// *domain.RemoteError of kind domain.ErrRemoteRejected.
type Publisher interface {
	// Create publishes a new post.
	Create(ctx context.Context, blogID string, payload domain.PostPayload) (*domain.PublishedPost, error)

	// Get fetches an existing post.
	Get(ctx context.Context, blogID, postID string) (*domain.Post, error)

	// Update replaces a post with the given content.
	Update(ctx context.Context, blogID, postID string, post domain.Post) (*domain.Post, error)

	// Delete removes a post.
	Delete(ctx context.Context, blogID, postID string) error
}
