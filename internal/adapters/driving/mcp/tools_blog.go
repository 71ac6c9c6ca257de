package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/normalisers/html"
)

// excerptLength bounds the plain-text preview in post listings.
const excerptLength = 160

// BlogInput selects a blog; empty uses the configured default.
type BlogInput struct {
	BlogID string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
}

// ListPostsInput is the input schema for the list_posts tool.
type ListPostsInput struct {
	BlogID     string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
	MaxResults int64  `json:"max_results,omitempty" jsonschema:"maximum number of posts (default 10)"`
}

// PostRefInput identifies one post.
type PostRefInput struct {
	BlogID string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
	PostID string `json:"post_id" jsonschema:"Blogger post ID"`
}

// CreatePostInput is the input schema for the create_post tool.
type CreatePostInput struct {
	BlogID      string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
	Title       string `json:"title" jsonschema:"post title"`
	Content     string `json:"content" jsonschema:"post body as HTML"`
	Labels      any    `json:"labels,omitempty" jsonschema:"labels as a list or a comma-separated string"`
	PublishDate string `json:"publish_date,omitempty" jsonschema:"ISO-8601 publish date; future dates schedule the post"`
	IsDraft     bool   `json:"is_draft,omitempty" jsonschema:"create the post as a draft"`
}

// UpdatePostInput is the input schema for the update_post tool.
// Omitted fields keep their current value.
type UpdatePostInput struct {
	BlogID  string  `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
	PostID  string  `json:"post_id" jsonschema:"Blogger post ID"`
	Title   *string `json:"title,omitempty" jsonschema:"new title"`
	Content *string `json:"content,omitempty" jsonschema:"new HTML body"`
	Labels  any     `json:"labels,omitempty" jsonschema:"new labels as a list or a comma-separated string"`
}

// BlogOutput describes one blog.
type BlogOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	PostCount   int64  `json:"post_count,omitempty"`
}

// BlogsOutput is the output schema for the list_blogs tool.
type BlogsOutput struct {
	Blogs []BlogOutput `json:"blogs"`
}

// PostOutput describes one post.
type PostOutput struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	URL       string   `json:"url,omitempty"`
	Status    string   `json:"status,omitempty"`
	Published string   `json:"published,omitempty"`
	Updated   string   `json:"updated,omitempty"`
}

// PostsOutput is the output schema for the list_posts tool.
type PostsOutput struct {
	Posts []PostOutput `json:"posts"`
}

// CreatedPostOutput is the output schema for the create_post tool.
type CreatedPostOutput struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// DeletedOutput is the output schema for the delete_post tool.
type DeletedOutput struct {
	Deleted bool   `json:"deleted"`
	PostID  string `json:"post_id"`
}

func (s *Server) registerBlogTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_blogs",
		Description: "List the Blogger blogs owned by the signed-in account",
	}, s.handleListBlogs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List recent posts of a blog",
	}, s.handleListPosts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_post",
		Description: "Fetch one blog post",
	}, s.handleGetPost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_post",
		Description: "Create a blog post directly, without a sheet row",
	}, s.handleCreatePost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_post",
		Description: "Change a post's title, content or labels; omitted fields are kept",
	}, s.handleUpdatePost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_post",
		Description: "Delete a blog post",
	}, s.handleDeletePost)
}

func (s *Server) handleListBlogs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, BlogsOutput, error) {
	t, err := s.resolveTarget("", "", false, false)
	if err != nil {
		return nil, BlogsOutput{}, toolError(err)
	}

	blogs, err := s.ports.Blog.ListBlogs(ctx, t.userID)
	if err != nil {
		return nil, BlogsOutput{}, toolError(err)
	}

	output := BlogsOutput{Blogs: make([]BlogOutput, len(blogs))}
	for i, b := range blogs {
		output.Blogs[i] = BlogOutput(b)
	}
	return nil, output, nil
}

func (s *Server) handleListPosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPostsInput,
) (*mcp.CallToolResult, PostsOutput, error) {
	t, err := s.resolveTarget("", input.BlogID, false, true)
	if err != nil {
		return nil, PostsOutput{}, toolError(err)
	}

	posts, err := s.ports.Blog.ListPosts(ctx, t.userID, t.blogID, input.MaxResults)
	if err != nil {
		return nil, PostsOutput{}, toolError(err)
	}

	output := PostsOutput{Posts: make([]PostOutput, len(posts))}
	for i := range posts {
		// Listings carry a text excerpt instead of the body.
		output.Posts[i] = toPostOutput(&posts[i])
		output.Posts[i].Content = ""
		output.Posts[i].Excerpt = html.Excerpt(posts[i].Content, excerptLength)
	}
	return nil, output, nil
}

func (s *Server) handleGetPost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PostRefInput,
) (*mcp.CallToolResult, PostOutput, error) {
	t, err := s.resolveTarget("", input.BlogID, false, true)
	if err != nil {
		return nil, PostOutput{}, toolError(err)
	}

	post, err := s.ports.Blog.GetPost(ctx, t.userID, t.blogID, input.PostID)
	if err != nil {
		return nil, PostOutput{}, toolError(err)
	}
	return nil, toPostOutput(post), nil
}

func (s *Server) handleCreatePost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreatePostInput,
) (*mcp.CallToolResult, CreatedPostOutput, error) {
	t, err := s.resolveTarget("", input.BlogID, false, true)
	if err != nil {
		return nil, CreatedPostOutput{}, toolError(err)
	}

	labels, err := decodeLabels(input.Labels)
	if err != nil {
		return nil, CreatedPostOutput{}, toolError(err)
	}

	created, err := s.ports.Blog.CreatePost(ctx, t.userID, t.blogID, domain.PostInput{
		Title:       input.Title,
		Content:     input.Content,
		Labels:      labels,
		PublishDate: input.PublishDate,
		IsDraft:     input.IsDraft,
	})
	if err != nil {
		return nil, CreatedPostOutput{}, toolError(err)
	}
	return nil, CreatedPostOutput{ID: created.ID, URL: created.URL}, nil
}

func (s *Server) handleUpdatePost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdatePostInput,
) (*mcp.CallToolResult, PostOutput, error) {
	t, err := s.resolveTarget("", input.BlogID, false, true)
	if err != nil {
		return nil, PostOutput{}, toolError(err)
	}

	patch := domain.PostPatch{Title: input.Title, Content: input.Content}
	if input.Labels != nil {
		labels, err := decodeLabels(input.Labels)
		if err != nil {
			return nil, PostOutput{}, toolError(err)
		}
		patch.Labels = &labels
	}

	updated, err := s.ports.Blog.UpdatePost(ctx, t.userID, t.blogID, input.PostID, patch)
	if err != nil {
		return nil, PostOutput{}, toolError(err)
	}
	return nil, toPostOutput(updated), nil
}

func (s *Server) handleDeletePost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PostRefInput,
) (*mcp.CallToolResult, DeletedOutput, error) {
	t, err := s.resolveTarget("", input.BlogID, false, true)
	if err != nil {
		return nil, DeletedOutput{}, toolError(err)
	}

	if err := s.ports.Blog.DeletePost(ctx, t.userID, t.blogID, input.PostID); err != nil {
		return nil, DeletedOutput{}, toolError(err)
	}
	return nil, DeletedOutput{Deleted: true, PostID: input.PostID}, nil
}

func toPostOutput(p *domain.Post) PostOutput {
	return PostOutput{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Labels:    p.Labels,
		URL:       p.URL,
		Status:    p.Status,
		Published: formatTimePtr(p.Published),
		Updated:   formatTimePtr(p.Updated),
	}
}
