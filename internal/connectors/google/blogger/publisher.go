package blogger

import (
	"context"

	"google.golang.org/api/blogger/v3"

	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Publisher   = (*Publisher)(nil)
	_ driven.BlogCatalog = (*Publisher)(nil)
)

// Publisher creates, edits and lists Blogger posts.
type Publisher struct {
	svc         *blogger.Service
	rateLimiter *google.RateLimiter
}

// NewPublisher creates a Publisher. A nil rate limiter uses the Blogger defaults.
func NewPublisher(svc *blogger.Service, rateLimiter *google.RateLimiter) *Publisher {
	if rateLimiter == nil {
		rateLimiter = google.NewRateLimiter(google.ServiceBlogger)
	}
	return &Publisher{svc: svc, rateLimiter: rateLimiter}
}

// Create inserts a post. Blogger schedules it when the publish date is in
// the future.
func (p *Publisher) Create(ctx context.Context, blogID string, payload domain.PostPayload) (*domain.PublishedPost, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	created, err := p.svc.Posts.Insert(blogID, PayloadToPost(payload)).
		IsDraft(payload.IsDraft).
		Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(p.rateLimiter.Observe(err), "create post")
	}

	return &domain.PublishedPost{ID: created.Id, URL: created.Url}, nil
}

// Get fetches a post.
func (p *Publisher) Get(ctx context.Context, blogID, postID string) (*domain.Post, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	post, err := p.svc.Posts.Get(blogID, postID).Context(ctx).Do()
	if err != nil {
		if google.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, google.WrapError(p.rateLimiter.Observe(err), "get post")
	}

	return PostToDomain(post), nil
}

// Update replaces a post's title, content and labels.
func (p *Publisher) Update(ctx context.Context, blogID, postID string, post domain.Post) (*domain.Post, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	updated, err := p.svc.Posts.Update(blogID, postID, DomainToPost(post)).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(p.rateLimiter.Observe(err), "update post")
	}

	return PostToDomain(updated), nil
}

// Delete removes a post.
func (p *Publisher) Delete(ctx context.Context, blogID, postID string) error {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	if err := p.svc.Posts.Delete(blogID, postID).Context(ctx).Do(); err != nil {
		return google.WrapError(p.rateLimiter.Observe(err), "delete post")
	}
	return nil
}

// ListBlogs returns the authenticated user's blogs.
func (p *Publisher) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.svc.Blogs.ListByUser("self").Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(p.rateLimiter.Observe(err), "list blogs")
	}

	blogs := make([]domain.Blog, 0, len(resp.Items))
	for _, b := range resp.Items {
		blogs = append(blogs, BlogToDomain(b))
	}
	return blogs, nil
}

// GetBlog returns one blog.
func (p *Publisher) GetBlog(ctx context.Context, blogID string) (*domain.Blog, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	b, err := p.svc.Blogs.Get(blogID).Context(ctx).Do()
	if err != nil {
		if google.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, google.WrapError(p.rateLimiter.Observe(err), "get blog")
	}

	blog := BlogToDomain(b)
	return &blog, nil
}

// ListPosts returns up to maxResults recent posts of a blog.
func (p *Publisher) ListPosts(ctx context.Context, blogID string, maxResults int64) ([]domain.Post, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.svc.Posts.List(blogID).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(p.rateLimiter.Observe(err), "list posts")
	}

	posts := make([]domain.Post, 0, len(resp.Items))
	for _, item := range resp.Items {
		posts = append(posts, *PostToDomain(item))
	}
	return posts, nil
}
