package blogger

import (
	"time"

	"google.golang.org/api/blogger/v3"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// PayloadToPost converts a publish payload to a Blogger post body.
// A nil publish date leaves Published empty so Blogger publishes now.
func PayloadToPost(payload domain.PostPayload) *blogger.Post {
	post := &blogger.Post{
		Title:   payload.Title,
		Content: payload.Content,
		Labels:  payload.Labels,
	}
	if payload.Published != nil {
		post.Published = payload.Published.Format(time.RFC3339)
	}
	return post
}

// DomainToPost converts a domain post to a Blogger post body for updates.
func DomainToPost(p domain.Post) *blogger.Post {
	post := &blogger.Post{
		Id:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Labels:  p.Labels,
	}
	if p.Published != nil {
		post.Published = p.Published.Format(time.RFC3339)
	}
	return post
}

// PostToDomain converts a Blogger post to a domain post.
// Unparseable timestamps are left nil.
func PostToDomain(p *blogger.Post) *domain.Post {
	post := &domain.Post{
		ID:        p.Id,
		Title:     p.Title,
		Content:   p.Content,
		Labels:    p.Labels,
		URL:       p.Url,
		Status:    p.Status,
		Published: parseTime(p.Published),
		Updated:   parseTime(p.Updated),
	}
	if p.Blog != nil {
		post.BlogID = p.Blog.Id
	}
	return post
}

// BlogToDomain converts a Blogger blog to a domain blog.
func BlogToDomain(b *blogger.Blog) domain.Blog {
	blog := domain.Blog{
		ID:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		URL:         b.Url,
	}
	if b.Posts != nil {
		blog.PostCount = b.Posts.TotalItems
	}
	return blog
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
