package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PostRecord is a typed spreadsheet row describing one blog post.
type PostRecord struct {
	// Row is the 1-based sheet row number (header is row 1).
	Row int `json:"row"`
	// Title is the post title.
	Title string `json:"title"`
	// Content is the post body (HTML).
	Content string `json:"content"`
	// Labels are the post labels, already split and trimmed.
	Labels []string `json:"labels,omitempty"`
	// RawPublishDate is the Publish Date cell as read from the sheet.
	RawPublishDate string `json:"publish_date,omitempty"`
	// PublishDate is the parsed publish date. Nil when absent or not yet parsed.
	PublishDate *time.Time `json:"-"`
}

// HasDate returns true if the row carries a non-empty Publish Date cell.
func (r PostRecord) HasDate() bool {
	return strings.TrimSpace(r.RawPublishDate) != ""
}

// Payload builds the remote post payload for this record.
func (r PostRecord) Payload() PostPayload {
	return PostPayload{
		Title:     r.Title,
		Content:   r.Content,
		Labels:    r.Labels,
		Published: r.PublishDate,
	}
}

// PostPayload is the body sent to the publish capability.
type PostPayload struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Labels    []string   `json:"labels,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	IsDraft   bool       `json:"is_draft,omitempty"`
}

// Post is a remote blog post.
type Post struct {
	ID        string     `json:"id"`
	BlogID    string     `json:"blog_id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Labels    []string   `json:"labels,omitempty"`
	URL       string     `json:"url,omitempty"`
	Status    string     `json:"status,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	Updated   *time.Time `json:"updated,omitempty"`
}

// PublishedPost identifies a newly created remote post.
type PublishedPost struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Labels  *Labels `json:"labels,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Labels == nil
}

// ApplyTo merges the present fields of the patch into post.
func (p PostPatch) ApplyTo(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Labels != nil {
		post.Labels = []string(*p.Labels)
	}
}

// PostInput describes an ad-hoc post to create.
type PostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Labels      Labels `json:"labels,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	IsDraft     bool   `json:"is_draft,omitempty"`
}

// Blog describes a blog owned by the user.
type Blog struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	PostCount   int64  `json:"post_count,omitempty"`
}

// Labels is a label list that decodes from either a JSON list or a
// comma-separated JSON string.
type Labels []string

// UnmarshalJSON accepts ["a","b"] or "a, b".
func (l *Labels) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("labels must be a string or a list of strings: %w", err)
	}
	*l = ParseLabels(s)
	return nil
}

// ParseLabels splits a comma-separated label cell, trimming each item.
// Empty items are dropped.
func ParseLabels(s string) Labels {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	labels := make(Labels, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// DisplayDateLayout is the human-readable format for publish dates.
const DisplayDateLayout = "2006-01-02 15:04:05"

var (
	offsetLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04Z07:00",
		"2006-01-02T15:04:05-0700",
		"2006-01-02 15:04:05-0700",
		"2006-01-02T15:04-0700",
		"2006-01-02 15:04-0700",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// ParsePublishDate parses an ISO-8601 publish date. A trailing Z is treated
// as +00:00. Values without an offset are interpreted in loc (UTC if nil).
func ParsePublishDate(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "+00:00"
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
