package blogger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/blogger/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

type recorded struct {
	method string
	path   string
	query  map[string][]string
	body   map[string]any
}

func newTestPublisher(t *testing.T, status int, response any) (*Publisher, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.body = nil
		_ = json.NewDecoder(r.Body).Decode(&rec.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)

	svc, err := blogger.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100})
	return NewPublisher(svc, limiter), rec
}

func apiError(code int, msg string) map[string]any {
	return map[string]any{"error": map[string]any{"code": code, "message": msg}}
}

func TestPublisher_Create(t *testing.T) {
	pub, rec := newTestPublisher(t, http.StatusOK, map[string]any{
		"id":  "p-99",
		"url": "https://example.blogspot.com/2024/01/hello.html",
	})
	when := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	created, err := pub.Create(context.Background(), "b1", domain.PostPayload{
		Title:     "Hello",
		Content:   "<p>Hi</p>",
		Labels:    []string{"a", "b"},
		Published: &when,
	})

	require.NoError(t, err)
	assert.Equal(t, "p-99", created.ID)
	assert.Equal(t, "https://example.blogspot.com/2024/01/hello.html", created.URL)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Contains(t, rec.path, "/blogs/b1/posts")
	assert.Equal(t, "Hello", rec.body["title"])
	assert.Equal(t, "2024-01-02T09:00:00Z", rec.body["published"])
	assert.Equal(t, []any{"a", "b"}, rec.body["labels"])
	assert.Equal(t, []string{"false"}, rec.query["isDraft"])
}

func TestPublisher_Create_Rejected(t *testing.T) {
	pub, _ := newTestPublisher(t, http.StatusBadRequest, apiError(400, "Invalid value for: published"))

	_, err := pub.Create(context.Background(), "b1", domain.PostPayload{Title: "x"})

	require.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Contains(t, err.Error(), "Invalid value for: published")
}

func TestPublisher_Create_RateLimited(t *testing.T) {
	pub, _ := newTestPublisher(t, http.StatusTooManyRequests, apiError(429, "Rate Limit Exceeded"))

	_, err := pub.Create(context.Background(), "b1", domain.PostPayload{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.False(t, pub.rateLimiter.Allow(), "backoff after 429")
}

func TestPublisher_Get(t *testing.T) {
	pub, rec := newTestPublisher(t, http.StatusOK, map[string]any{
		"id":        "p1",
		"title":     "T",
		"content":   "C",
		"labels":    []string{"x"},
		"status":    "LIVE",
		"published": "2024-01-02T09:00:00-08:00",
		"blog":      map[string]any{"id": "b1"},
	})

	post, err := pub.Get(context.Background(), "b1", "p1")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "b1", post.BlogID)
	assert.Equal(t, "LIVE", post.Status)
	require.NotNil(t, post.Published)
	assert.True(t, time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC).Equal(*post.Published))
}

func TestPublisher_Get_NotFound(t *testing.T) {
	pub, _ := newTestPublisher(t, http.StatusNotFound, apiError(404, "Not Found"))

	_, err := pub.Get(context.Background(), "b1", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublisher_UpdateAndDelete(t *testing.T) {
	pub, rec := newTestPublisher(t, http.StatusOK, map[string]any{"id": "p1", "title": "New"})

	updated, err := pub.Update(context.Background(), "b1", "p1", domain.Post{ID: "p1", Title: "New", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "C", rec.body["content"])

	require.NoError(t, pub.Delete(context.Background(), "b1", "p1"))
	assert.Equal(t, http.MethodDelete, rec.method)
}

func TestPublisher_ListBlogs(t *testing.T) {
	pub, rec := newTestPublisher(t, http.StatusOK, map[string]any{
		"items": []map[string]any{
			{"id": "b1", "name": "Notes", "url": "https://notes.blogspot.com/", "posts": map[string]any{"totalItems": 12}},
		},
	})

	blogs, err := pub.ListBlogs(context.Background())

	require.NoError(t, err)
	assert.Contains(t, rec.path, "/users/self/blogs")
	assert.Equal(t, []domain.Blog{{ID: "b1", Name: "Notes", URL: "https://notes.blogspot.com/", PostCount: 12}}, blogs)
}

func TestPublisher_ListPosts(t *testing.T) {
	pub, rec := newTestPublisher(t, http.StatusOK, map[string]any{
		"items": []map[string]any{{"id": "p1"}, {"id": "p2"}},
	})

	posts, err := pub.ListPosts(context.Background(), "b1", 5)

	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, []string{"5"}, rec.query["maxResults"])
}

func TestPayloadToPost_NoDate(t *testing.T) {
	post := PayloadToPost(domain.PostPayload{Title: "t"})

	assert.Empty(t, post.Published)
}
