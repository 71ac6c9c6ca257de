package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

func newBlogFixture(t *testing.T) (*BlogService, *mockPublisher, *mockCatalog) {
	t.Helper()
	publisher := newMockPublisher()
	catalog := &mockCatalog{
		blogs: []domain.Blog{{ID: "b1", Name: "Notes"}},
		posts: []domain.Post{{ID: "p1", Title: "First"}},
	}
	clients := &mockClientFactory{publisher: publisher, catalog: catalog}
	return NewBlogService(newSignedInCredentials(t), clients, time.UTC), publisher, catalog
}

func TestBlogService_UpdatePost_MergesPatch(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)
	publisher.posts["p1"] = domain.Post{ID: "p1", Title: "T", Content: "old", Labels: []string{"x"}}
	content := "new"

	updated, err := svc.UpdatePost(context.Background(), testUser, "b1", "p1", domain.PostPatch{Content: &content})

	require.NoError(t, err)
	require.Len(t, publisher.updated, 1)
	sent := publisher.updated[0]
	assert.Equal(t, "T", sent.Title)
	assert.Equal(t, "new", sent.Content)
	assert.Equal(t, []string{"x"}, sent.Labels)
	assert.Equal(t, "new", updated.Content)
}

func TestBlogService_UpdatePost_Labels(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)
	publisher.posts["p1"] = domain.Post{ID: "p1", Title: "T", Labels: []string{"x"}}
	labels := domain.ParseLabels("a, b")

	_, err := svc.UpdatePost(context.Background(), testUser, "b1", "p1", domain.PostPatch{Labels: &labels})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, publisher.updated[0].Labels)
}

func TestBlogService_UpdatePost_Errors(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)
	title := "t"

	_, err := svc.UpdatePost(context.Background(), testUser, "b1", "p1", domain.PostPatch{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdatePost(context.Background(), testUser, "b1", "missing", domain.PostPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	publisher.posts["p1"] = domain.Post{ID: "p1"}
	publisher.updateErr = domain.Unavailable("timeout")
	_, err = svc.UpdatePost(context.Background(), testUser, "b1", "p1", domain.PostPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestBlogService_CreatePost(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)

	created, err := svc.CreatePost(context.Background(), testUser, "b1", domain.PostInput{
		Title:       "Hi",
		Content:     "<p>x</p>",
		Labels:      domain.Labels{"a"},
		PublishDate: "2030-05-01T09:00:00Z",
		IsDraft:     true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	sent := publisher.created[0]
	assert.True(t, sent.IsDraft)
	require.NotNil(t, sent.Published)
	assert.True(t, time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC).Equal(*sent.Published))
}

func TestBlogService_CreatePost_Validation(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)

	_, err := svc.CreatePost(context.Background(), testUser, "b1", domain.PostInput{Title: " "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title, content")

	_, err = svc.CreatePost(context.Background(), testUser, "b1", domain.PostInput{Title: "t", Content: "c", PublishDate: "later"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	assert.Empty(t, publisher.created)
}

func TestBlogService_GetAndDelete(t *testing.T) {
	svc, publisher, _ := newBlogFixture(t)
	publisher.posts["p1"] = domain.Post{ID: "p1", Title: "T"}

	post, err := svc.GetPost(context.Background(), testUser, "b1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "T", post.Title)

	require.NoError(t, svc.DeletePost(context.Background(), testUser, "b1", "p1"))
	assert.Equal(t, []string{"p1"}, publisher.deleted)

	err = svc.DeletePost(context.Background(), testUser, "b1", "p1")
	assert.ErrorIs(t, err, domain.ErrRemoteRejected)

	_, err = svc.GetPost(context.Background(), testUser, "", "p1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlogService_Catalog(t *testing.T) {
	svc, _, catalog := newBlogFixture(t)

	blogs, err := svc.ListBlogs(context.Background(), testUser)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)

	blog, err := svc.GetBlog(context.Background(), testUser, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Notes", blog.Name)

	posts, err := svc.ListPosts(context.Background(), testUser, "b1", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(DefaultListPosts), catalog.max)
}

func TestBlogService_RequiresCredentials(t *testing.T) {
	svc, _, _ := newBlogFixture(t)

	_, err := svc.ListBlogs(context.Background(), "stranger")
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
}
